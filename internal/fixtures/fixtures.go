// Package fixtures builds forward-direction SUN message triples: given
// keys, a UID, a read counter, and optional plaintext file bytes, it
// produces the (piccEnc, sdmmac, encFile) triple sdmcore.DecryptSunMessage
// would accept — the trusted-encoder half of the round trip described by
// the core's own testable properties, used by sdmfixture and by this
// package's round-trip test.
package fixtures

import (
	"fmt"

	"github.com/taplink/sdmcore/pkg/sdmcore"
)

// SUNTriple is the generated message (PICCEnc, SDMMAC, and EncFile, which
// is nil when no plaintext was given) along with the UID, read counter and
// encryption mode it encodes.
type SUNTriple struct {
	PICCEnc        []byte
	SDMMAC         []byte
	EncFile        []byte
	UID            []byte
	ReadCtr        uint32
	EncryptionMode sdmcore.EncryptionMode
}

// BuildSUNTriple encrypts uid/readCtr (and, if plaintext is non-nil,
// the file payload) the way a genuine NTAG 424 DNA tag would under
// metaKey/fileKey, for the given mode. readCtr must fit in 24 bits.
func BuildSUNTriple(metaKey, fileKey, uid []byte, readCtr uint32, plaintext []byte, mode sdmcore.EncryptionMode, paramMode sdmcore.ParamMode, sdmmacParam string) (*SUNTriple, error) {
	if len(uid) != 7 {
		return nil, fmt.Errorf("uid must be 7 bytes, got %d", len(uid))
	}
	if readCtr > 0xFFFFFF {
		return nil, fmt.Errorf("read counter must fit in 24 bits")
	}

	plain := make([]byte, 16)
	plain[0] = 0xC7 // uidMirror=1, ctrMirror=1, uidLen=7
	copy(plain[1:8], uid)
	ctrBytes := []byte{byte(readCtr), byte(readCtr >> 8), byte(readCtr >> 16)}
	copy(plain[8:11], ctrBytes)

	var piccEnc []byte
	var err error
	switch mode {
	case sdmcore.ModeAES:
		piccEnc, err = sdmcore.EncryptPICCAES(metaKey, plain)
	case sdmcore.ModeLRP:
		piccEnc, err = sdmcore.EncryptPICCLRP(metaKey, plain, nil)
	default:
		return nil, fmt.Errorf("unknown encryption mode")
	}
	if err != nil {
		return nil, fmt.Errorf("encrypt PICC: %w", err)
	}

	piccData := append(append([]byte(nil), uid...), ctrBytes...)

	var encFile []byte
	if plaintext != nil {
		encFile, err = sdmcore.EncryptFileData(fileKey, piccData, ctrBytes, plaintext, mode)
		if err != nil {
			return nil, fmt.Errorf("encrypt file: %w", err)
		}
	}

	sdmmac, err := sdmcore.CalculateSDMMAC(paramMode, fileKey, piccData, encFile, mode, sdmmacParam)
	if err != nil {
		return nil, fmt.Errorf("calculate SDMMAC: %w", err)
	}

	return &SUNTriple{
		PICCEnc:        piccEnc,
		SDMMAC:         sdmmac,
		EncFile:        encFile,
		UID:            append([]byte(nil), uid...),
		ReadCtr:        readCtr,
		EncryptionMode: mode,
	}, nil
}
