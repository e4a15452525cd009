package sdmcore

import "encoding/hex"

// CalculateSDMMAC computes the 8-byte truncated SDMMAC tag per §4.4.4.
// piccData is UID‖readCtr (never the leading PICCDataTag byte). encFile,
// if present, is the encrypted file payload whose uppercase hex form
// feeds the MAC input; sdmmacParam is the query-parameter name the host
// would have attached the tag to in the URL (e.g. "cmac"), appended to
// the MAC input only when paramMode is ParamSeparated and sdmmacParam is
// non-empty — url construction itself is the caller's concern.
func CalculateSDMMAC(paramMode ParamMode, fileReadKey, piccData, encFile []byte, mode EncryptionMode, sdmmacParam string) ([]byte, error) {
	if len(fileReadKey) != blockSize {
		return nil, newInvalidArgument("file read key must be 16 bytes")
	}

	var inputBuf []byte
	if len(encFile) > 0 {
		hexFile := make([]byte, hex.EncodedLen(len(encFile)))
		hex.Encode(hexFile, encFile)
		for i, b := range hexFile {
			if b >= 'a' && b <= 'f' {
				hexFile[i] = b - 'a' + 'A'
			}
		}
		inputBuf = append(inputBuf, hexFile...)
		if paramMode == ParamSeparated && sdmmacParam != "" {
			inputBuf = append(inputBuf, '&')
			inputBuf = append(inputBuf, sdmmacParam...)
			inputBuf = append(inputBuf, '=')
		}
	}

	var fullMac []byte
	var err error
	switch mode {
	case ModeAES:
		c2, err2 := deriveAESSessionKey(fileReadKey, sv2Prefix, piccData)
		if err2 != nil {
			return nil, err2
		}
		fullMac, err = aesCMAC(c2, inputBuf)
	case ModeLRP:
		masterKey, err2 := deriveLRPSessionKey(fileReadKey, piccData)
		if err2 != nil {
			return nil, err2
		}
		p, err3 := lrpPlaintexts(masterKey)
		if err3 != nil {
			return nil, err3
		}
		uk, err3 := lrpUpdatedKeys(masterKey)
		if err3 != nil {
			return nil, err3
		}
		fullMac, err = lrpCMAC(p, uk[0], inputBuf)
	default:
		return nil, newInvalidArgument("unknown encryption mode")
	}
	if err != nil {
		return nil, wrapCryptoFailure("SDMMAC computation failed", err)
	}
	return truncateOddBytes(fullMac), nil
}
