package sdmcore

// DecryptFileData decrypts encFile per §4.4.5. piccData is UID‖readCtr;
// readCtr is the raw 3-byte little-endian counter as it appears in the
// PICC data (not reversed). encFile must already be validated as a
// positive multiple of 16 bytes by the caller.
func DecryptFileData(fileReadKey, piccData, readCtr, encFile []byte, mode EncryptionMode) ([]byte, error) {
	if len(fileReadKey) != blockSize {
		return nil, newInvalidArgument("file read key must be 16 bytes")
	}
	if len(readCtr) != 3 {
		return nil, newInvalidArgument("read counter must be 3 bytes")
	}
	if len(encFile) == 0 || len(encFile)%blockSize != 0 {
		return nil, newCryptoFailure("encrypted file data not block aligned")
	}

	switch mode {
	case ModeAES:
		encSessionKey, err := deriveAESSessionKey(fileReadKey, sv1Prefix, piccData)
		if err != nil {
			return nil, err
		}
		ivInput := make([]byte, blockSize)
		copy(ivInput, readCtr)
		iv, err := aesECBEncrypt(encSessionKey, ivInput)
		if err != nil {
			return nil, wrapCryptoFailure("file IV derivation failed", err)
		}
		plain, err := aesCBCDecrypt(encSessionKey, iv, encFile)
		if err != nil {
			return nil, wrapCryptoFailure("file decryption failed", err)
		}
		return plain, nil
	case ModeLRP:
		masterKey, err := deriveLRPSessionKey(fileReadKey, piccData)
		if err != nil {
			return nil, err
		}
		counter := make([]byte, 6)
		copy(counter, readCtr)
		cipher, err := newLRPCipher(masterKey, 1, counter, false, 6)
		if err != nil {
			return nil, err
		}
		plain, err := cipher.lricbBlocks(encFile, false)
		if err != nil {
			return nil, wrapCryptoFailure("file decryption failed", err)
		}
		return plain, nil
	default:
		return nil, newInvalidArgument("unknown encryption mode")
	}
}
