package sdmcore

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// Diversifier labels, reproduced bit-exactly as ASCII HMAC-SHA-256 inputs.
var (
	labelPICCDataKey   = []byte("PICCDataKey")
	labelSlotMasterKey = []byte("SlotMasterKey")
	labelDivBaseKey    = []byte("DivBaseKey")
)

func hmacSHA256(key, msg []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	return h.Sum(nil)
}

func truncate16(b []byte) []byte {
	return b[:blockSize]
}

// isFactoryKey reports whether masterKey is the 16-byte all-zero factory
// key, in time independent of which byte (if any) is nonzero.
func isFactoryKey(masterKey []byte) bool {
	if len(masterKey) != blockSize {
		return false
	}
	return subtle.ConstantTimeCompare(masterKey, make([]byte, blockSize)) == 1
}

// DeriveUndiversifiedKey derives the 16-byte PICC data meta-read key from
// masterKey, for keyNumber == 1. This is the one key slot NTAG 424 DNA
// never diversifies by UID.
func DeriveUndiversifiedKey(masterKey []byte, keyNumber int) ([]byte, error) {
	if len(masterKey) < 16 || len(masterKey) > 32 {
		return nil, newInvalidArgument("master key must be 16..32 bytes")
	}
	if keyNumber != 1 {
		return nil, newInvalidArgument("key number must be 1")
	}
	if isFactoryKey(masterKey) {
		return make([]byte, blockSize), nil
	}
	return truncate16(hmacSHA256(masterKey, labelPICCDataKey)), nil
}

// DeriveTagKey derives a UID-bound 16-byte key from masterKey for the
// given keyNumber (1 or 2), using a NIST SP 800-108-style nested
// HMAC-SHA-256 + AES-CMAC schedule keyed by the tag UID.
func DeriveTagKey(masterKey, uid []byte, keyNumber int) ([]byte, error) {
	if len(masterKey) < 16 || len(masterKey) > 32 {
		return nil, newInvalidArgument("master key must be 16..32 bytes")
	}
	if len(uid) != 7 {
		return nil, newInvalidArgument("uid must be 7 bytes")
	}
	if keyNumber != 1 && keyNumber != 2 {
		return nil, newInvalidArgument("key number must be 1 or 2")
	}
	if isFactoryKey(masterKey) {
		return make([]byte, blockSize), nil
	}

	slotLabel := make([]byte, 0, len(labelSlotMasterKey)+1)
	slotLabel = append(slotLabel, labelSlotMasterKey...)
	slotLabel = append(slotLabel, byte(keyNumber))
	cmacKey := truncate16(hmacSHA256(masterKey, slotLabel))

	inner := hmacSHA256(masterKey, labelDivBaseKey)
	mid := truncate16(hmacSHA256(inner, uid))

	msg := make([]byte, 0, 1+len(mid))
	msg = append(msg, 0x01)
	msg = append(msg, mid...)
	return aesCMAC(cmacKey, msg)
}
