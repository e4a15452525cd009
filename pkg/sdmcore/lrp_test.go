package sdmcore

import (
	"bytes"
	"testing"
)

func TestLRPPlaintextsAndUpdatedKeysTableShape(t *testing.T) {
	t.Parallel()
	key := mustKey()

	p, err := lrpPlaintexts(key)
	if err != nil {
		t.Fatalf("lrpPlaintexts: %v", err)
	}
	if len(p) != 16 {
		t.Fatalf("expected 16 plaintexts, got %d", len(p))
	}
	for i, pi := range p {
		if len(pi) != blockSize {
			t.Fatalf("P[%d] has length %d, want %d", i, len(pi), blockSize)
		}
	}

	uk, err := lrpUpdatedKeys(key)
	if err != nil {
		t.Fatalf("lrpUpdatedKeys: %v", err)
	}
	if len(uk) != 4 {
		t.Fatalf("expected 4 updated keys, got %d", len(uk))
	}
	for i, uki := range uk {
		if len(uki) != blockSize {
			t.Fatalf("UK[%d] has length %d, want %d", i, len(uki), blockSize)
		}
	}

	p2, err := lrpPlaintexts(key)
	if err != nil {
		t.Fatalf("lrpPlaintexts: %v", err)
	}
	for i := range p {
		if !bytes.Equal(p[i], p2[i]) {
			t.Fatalf("lrpPlaintexts not deterministic at index %d", i)
		}
	}
}

func TestLRICBRoundTripUnpadded(t *testing.T) {
	t.Parallel()
	key := mustKey()
	plain := bytes.Repeat([]byte{0x37}, blockSize*3)

	enc, err := newLRPCipher(key, 0, nil, false, 8)
	if err != nil {
		t.Fatalf("newLRPCipher: %v", err)
	}
	ct, err := enc.encryptAll(plain)
	if err != nil {
		t.Fatalf("encryptAll: %v", err)
	}

	dec, err := newLRPCipher(key, 0, nil, false, 8)
	if err != nil {
		t.Fatalf("newLRPCipher: %v", err)
	}
	pt, err := dec.decryptAll(ct)
	if err != nil {
		t.Fatalf("decryptAll: %v", err)
	}
	if !bytes.Equal(pt, plain) {
		t.Fatalf("round trip mismatch: got %x want %x", pt, plain)
	}
}

func TestLRICBRoundTripPadded(t *testing.T) {
	t.Parallel()
	key := mustKey()
	plain := []byte("this message is not block aligned")

	enc, err := newLRPCipher(key, 1, []byte{0, 0, 0, 0, 0, 0}, true, 6)
	if err != nil {
		t.Fatalf("newLRPCipher: %v", err)
	}
	ct, err := enc.encryptAll(plain)
	if err != nil {
		t.Fatalf("encryptAll: %v", err)
	}

	dec, err := newLRPCipher(key, 1, []byte{0, 0, 0, 0, 0, 0}, true, 6)
	if err != nil {
		t.Fatalf("newLRPCipher: %v", err)
	}
	pt, err := dec.decryptAll(ct)
	if err != nil {
		t.Fatalf("decryptAll: %v", err)
	}
	if !bytes.Equal(pt, plain) {
		t.Fatalf("round trip mismatch: got %q want %q", pt, plain)
	}
}

func TestLRPCounterWrapsModularly(t *testing.T) {
	t.Parallel()
	key := mustKey()
	ff := bytes.Repeat([]byte{0xFF}, 8)
	c, err := newLRPCipher(key, 0, ff, false, 8)
	if err != nil {
		t.Fatalf("newLRPCipher: %v", err)
	}
	c.incrementCounter()
	if !bytes.Equal(c.counter, make([]byte, 8)) {
		t.Fatalf("expected counter to wrap to all-zero, got %x", c.counter)
	}
}

func TestLRPCMACDeterministicAndSized(t *testing.T) {
	t.Parallel()
	key := mustKey()
	p, err := lrpPlaintexts(key)
	if err != nil {
		t.Fatalf("lrpPlaintexts: %v", err)
	}
	uk, err := lrpUpdatedKeys(key)
	if err != nil {
		t.Fatalf("lrpUpdatedKeys: %v", err)
	}

	mac1, err := lrpCMAC(p, uk[0], []byte("some message"))
	if err != nil {
		t.Fatalf("lrpCMAC: %v", err)
	}
	if len(mac1) != blockSize {
		t.Fatalf("expected 16-byte MAC, got %d", len(mac1))
	}
	mac2, err := lrpCMAC(p, uk[0], []byte("some message"))
	if err != nil {
		t.Fatalf("lrpCMAC: %v", err)
	}
	if !bytes.Equal(mac1, mac2) {
		t.Fatal("lrpCMAC not deterministic")
	}

	macEmpty, err := lrpCMAC(p, uk[0], nil)
	if err != nil {
		t.Fatalf("lrpCMAC empty: %v", err)
	}
	if len(macEmpty) != blockSize {
		t.Fatalf("expected 16-byte MAC for empty message, got %d", len(macEmpty))
	}
}
