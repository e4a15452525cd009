/*
Package sdmcore implements the cryptographic core of NTAG 424 DNA Secure
Dynamic Messaging (SDM): decrypting and authenticating the per-tap
message triple (encrypted PICC block, optional encrypted file payload,
truncated SDMMAC) back into a tag UID, monotonic read counter, and
optional plaintext file bytes.

# Layers

The package is organised bottom-up:

  - Block primitives (block.go): AES-128 ECB/CBC, constant-time compare,
    GF(2^128) doubling.
  - MAC and primitives (cmac.go, lrp.go, lrpcmac.go): AES-CMAC per NIST
    SP 800-38B, and the full Leakage-Resilient Primitive (LRP)
    construction per NXP AN12304 — plaintext/updated-key tables, LRP
    evaluation, LRICB block encryption, LRP-CMAC.
  - Key diversification (diversify.go): UID-bound key derivation from a
    master key, using nested HMAC-SHA-256 and AES-CMAC.
  - SUN protocol (sun.go, plainsun.go, session.go, mac.go, file.go):
    mode detection, session-key derivation, PICC decryption, SDMMAC
    verification, encrypted file decryption, and plain-SUN validation.

# Shape

Every exported operation is a pure function over borrowed byte slices,
returning an owned result or a typed *Error. The only mutable object is
lrpCipher, which owns its key-derived tables and counter; it is
single-threaded and short-lived, confined to one DecryptSunMessage,
ValidatePlainSun, CalculateSDMMAC, or DecryptFileData call.

The package does no I/O, performs no URL parsing or hex decoding, and
keeps no state between calls — those are the caller's concerns.
*/
package sdmcore
