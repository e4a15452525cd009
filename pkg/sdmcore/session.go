package sdmcore

// deriveAESSessionKey implements §4.4.3's AES-mode session key: the
// 16-byte CMAC of the chosen SV prefix concatenated with piccData (UID
// ‖ readCtr, per the test-vector-confirmed reading of the source) and
// zero-padded to the next 16-byte boundary.
func deriveAESSessionKey(fileReadKey, svPrefix, piccData []byte) ([]byte, error) {
	msg := make([]byte, 0, len(svPrefix)+len(piccData))
	msg = append(msg, svPrefix...)
	msg = append(msg, piccData...)
	msg = zeroPadTo16(msg)
	return aesCMAC(fileReadKey, msg)
}

// buildLRPSVStream builds the LRP session-key derivation stream: the
// fixed 4-byte prefix, piccData, zero padding until (len+2)%16==0, then
// the 2-byte trailer.
func buildLRPSVStream(piccData []byte) []byte {
	body := make([]byte, 0, len(lrpSVPrefix)+len(piccData))
	body = append(body, lrpSVPrefix...)
	body = append(body, piccData...)
	for (len(body)+len(lrpSVTrailer))%blockSize != 0 {
		body = append(body, 0x00)
	}
	body = append(body, lrpSVTrailer...)
	return body
}

// deriveLRPSessionKey implements §4.4.3's LRP-mode session key: an LRP
// instance keyed by fileReadKey in update mode 0, LRP-CMAC'd over the
// constructed stream.
func deriveLRPSessionKey(fileReadKey, piccData []byte) ([]byte, error) {
	p, err := lrpPlaintexts(fileReadKey)
	if err != nil {
		return nil, err
	}
	uk, err := lrpUpdatedKeys(fileReadKey)
	if err != nil {
		return nil, err
	}
	stream := buildLRPSVStream(piccData)
	return lrpCMAC(p, uk[0], stream)
}
