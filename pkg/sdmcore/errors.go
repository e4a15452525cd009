package sdmcore

import (
	"errors"
	"fmt"
)

// Kind classifies a failure from this package, per the taxonomy in
// the protocol specification: argument errors, malformed wire data,
// internal crypto failures, structurally-impossible decryptions, and
// authentication/validation mismatches all stay distinguishable to
// callers without leaking which internal step produced them.
type Kind int

const (
	// KindInvalidArgument: a caller-supplied argument (key length,
	// key number) is out of range.
	KindInvalidArgument Kind = iota
	// KindMalformedInput: a protocol message part has the wrong
	// length (PICC blob, SDMMAC, encrypted file data).
	KindMalformedInput
	// KindCryptoFailure: an underlying block operation failed.
	KindCryptoFailure
	// KindDecryptionFailure: the message decrypted into something
	// structurally impossible.
	KindDecryptionFailure
	// KindValidationFailure: the SDMMAC did not match, or
	// ValidatePlainSun received malformed input.
	KindValidationFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindMalformedInput:
		return "MalformedInput"
	case KindCryptoFailure:
		return "CryptoFailure"
	case KindDecryptionFailure:
		return "DecryptionFailure"
	case KindValidationFailure:
		return "ValidationFailure"
	default:
		return "Unknown"
	}
}

// Error is the single error type surfaced by this package. Messages are
// fixed strings chosen for log triage, never a decrypted fragment.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "sdmcore error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("sdmcore: %s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("sdmcore: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// KindOf extracts the Kind from err, if err is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func newInvalidArgument(msg string) *Error      { return &Error{Kind: KindInvalidArgument, Msg: msg} }
func newMalformedInput(msg string) *Error       { return &Error{Kind: KindMalformedInput, Msg: msg} }
func newCryptoFailure(msg string) *Error        { return &Error{Kind: KindCryptoFailure, Msg: msg} }
func newDecryptionFailure(msg string) *Error    { return &Error{Kind: KindDecryptionFailure, Msg: msg} }
func newValidationFailure(msg string) *Error    { return &Error{Kind: KindValidationFailure, Msg: msg} }
func wrapCryptoFailure(msg string, cause error) *Error {
	return &Error{Kind: KindCryptoFailure, Msg: msg, Cause: cause}
}
