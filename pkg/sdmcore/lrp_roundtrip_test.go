package sdmcore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildLRPFixture(t *testing.T, metaKey, fileKey, uid []byte, readCtr uint32, plaintext []byte) (piccEnc, sdmmac, encFile []byte) {
	t.Helper()

	plain := make([]byte, blockSize)
	plain[0] = 0xC7
	copy(plain[1:8], uid)
	plain[8] = byte(readCtr)
	plain[9] = byte(readCtr >> 8)
	plain[10] = byte(readCtr >> 16)

	piccRandom := bytes.Repeat([]byte{0xAB}, 8)
	enc, err := newLRPCipher(metaKey, 0, piccRandom, false, 8)
	require.NoError(t, err)
	cipherBlock, err := enc.lricbBlocks(plain, true)
	require.NoError(t, err)
	piccEnc = append(append([]byte(nil), piccRandom...), cipherBlock...)

	piccData := append(append([]byte(nil), uid...), plain[8:11]...)

	var encryptedFile []byte
	if plaintext != nil {
		masterKey, err := deriveLRPSessionKey(fileKey, piccData)
		require.NoError(t, err)
		counter := make([]byte, 6)
		copy(counter, plain[8:11])
		fileCipher, err := newLRPCipher(masterKey, 1, counter, false, 6)
		require.NoError(t, err)
		encryptedFile, err = fileCipher.lricbBlocks(plaintext, true)
		require.NoError(t, err)
	}

	sdmmac, err = CalculateSDMMAC(ParamSeparated, fileKey, piccData, encryptedFile, ModeLRP, "")
	require.NoError(t, err)

	return piccEnc, sdmmac, encryptedFile
}

func TestDecryptSunMessageRoundTripLRPWithFile(t *testing.T) {
	t.Parallel()
	metaKey := bytes.Repeat([]byte{0x08}, 16)
	fileKey := bytes.Repeat([]byte{0x09}, 16)
	uid := []byte{0x04, 0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02}
	plaintext := bytes.Repeat([]byte{0x5A}, blockSize)

	piccEnc, sdmmac, encFile := buildLRPFixture(t, metaKey, fileKey, uid, 9, plaintext)

	res, err := DecryptSunMessage(ParamSeparated, metaKey, fixedFileKey(fileKey), piccEnc, sdmmac, encFile, "")
	require.NoError(t, err)
	require.Equal(t, uid, res.UID)
	require.EqualValues(t, 9, res.ReadCtr)
	require.Equal(t, plaintext, res.FileData)
	require.Equal(t, ModeLRP, res.EncryptionMode)
}

func TestDecryptSunMessageRoundTripLRPNoFile(t *testing.T) {
	t.Parallel()
	metaKey := bytes.Repeat([]byte{0x0A}, 16)
	fileKey := bytes.Repeat([]byte{0x0B}, 16)
	uid := []byte{0x04, 0x10, 0x20, 0x30, 0x40, 0x50, 0x60}

	piccEnc, sdmmac, _ := buildLRPFixture(t, metaKey, fileKey, uid, 3, nil)

	res, err := DecryptSunMessage(ParamSeparated, metaKey, fixedFileKey(fileKey), piccEnc, sdmmac, nil, "")
	require.NoError(t, err)
	require.Equal(t, uid, res.UID)
	require.EqualValues(t, 3, res.ReadCtr)
	require.Nil(t, res.FileData)
}
