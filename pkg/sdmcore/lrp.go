package sdmcore

// LRP (Leakage-Resilient Primitive, NXP AN12304) is a deterministic block
// cipher construction built entirely out of AES-ECB. lrpCipher is the only
// mutable object this package defines: it owns a plaintexts table, an
// updated-keys table, the key currently selected from that table, a
// variable-width counter, and a padding mode. It is single-threaded and
// lives for exactly one protocol step (one PICC encryption/decryption or
// one LRICB file encrypt/decrypt). LRP-CMAC (lrpCMAC) works on the tables
// directly and does not use an lrpCipher.

var (
	lrpSeedUpper = bytesOf(0x55) // "upper" branch seed, Algorithm 1/2
	lrpSeedLower = bytesOf(0xAA) // "lower" branch seed, Algorithm 1/2
	lrpZeroBlock = make([]byte, blockSize)
)

func bytesOf(b byte) []byte {
	out := make([]byte, blockSize)
	for i := range out {
		out[i] = b
	}
	return out
}

// lrpPlaintexts computes the 16-entry plaintexts table P, Algorithm 1.
func lrpPlaintexts(key []byte) ([][]byte, error) {
	h, err := aesECBEncrypt(key, lrpSeedUpper)
	if err != nil {
		return nil, err
	}
	p := make([][]byte, 16)
	for i := 0; i < 16; i++ {
		pi, err := aesECBEncrypt(h, lrpSeedLower)
		if err != nil {
			return nil, err
		}
		p[i] = pi
		h, err = aesECBEncrypt(h, lrpSeedUpper)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// lrpUpdatedKeys computes the 4-entry updated-keys table UK, Algorithm 2.
func lrpUpdatedKeys(key []byte) ([][]byte, error) {
	h, err := aesECBEncrypt(key, lrpSeedLower)
	if err != nil {
		return nil, err
	}
	uk := make([][]byte, 4)
	for i := 0; i < 4; i++ {
		uki, err := aesECBEncrypt(h, lrpSeedLower)
		if err != nil {
			return nil, err
		}
		uk[i] = uki
		h, err = aesECBEncrypt(h, lrpSeedUpper)
		if err != nil {
			return nil, err
		}
	}
	return uk, nil
}

// evalLRP is Algorithm 3: process iv as a stream of 4-bit nibbles, high
// nibble of each byte first, starting from y=uk and chaining
// y <- AES_ECB(y, P[nibble]). If finalize, one more AES_ECB(y, 0^128) step.
func evalLRP(p [][]byte, uk []byte, iv []byte, finalize bool) ([]byte, error) {
	y := uk
	var err error
	for _, b := range iv {
		hi := b >> 4
		lo := b & 0x0F
		y, err = aesECBEncrypt(y, p[hi])
		if err != nil {
			return nil, err
		}
		y, err = aesECBEncrypt(y, p[lo])
		if err != nil {
			return nil, err
		}
	}
	if finalize {
		y, err = aesECBEncrypt(y, lrpZeroBlock)
		if err != nil {
			return nil, err
		}
	}
	return y, nil
}

// lrpCipher is a short-lived, single-threaded LRP cipher instance bound to
// one key. Construct with newLRPCipher; not safe to share across goroutines.
type lrpCipher struct {
	p          [][]byte
	uk         [][]byte
	updateMode int
	counter    []byte
	padCounter bool
}

// newLRPCipher derives P and UK from key and selects currentKey = UK[updateMode].
// counter is copied (not aliased) and may be 1..16 bytes; it defaults to all
// zeros of the given width if nil.
func newLRPCipher(key []byte, updateMode int, counter []byte, padCounter bool, width int) (*lrpCipher, error) {
	if updateMode < 0 || updateMode > 3 {
		return nil, newCryptoFailure("LRP update mode out of range")
	}
	p, err := lrpPlaintexts(key)
	if err != nil {
		return nil, err
	}
	uk, err := lrpUpdatedKeys(key)
	if err != nil {
		return nil, err
	}
	if counter == nil {
		counter = make([]byte, width)
	}
	ctr := make([]byte, len(counter))
	copy(ctr, counter)
	return &lrpCipher{p: p, uk: uk, updateMode: updateMode, counter: ctr, padCounter: padCounter}, nil
}

func (c *lrpCipher) currentKey() []byte {
	return c.uk[c.updateMode]
}

// incrementCounter performs a modular increment of the counter, same
// length, wrapping to all-zero on overflow.
func (c *lrpCipher) incrementCounter() {
	for i := len(c.counter) - 1; i >= 0; i-- {
		c.counter[i]++
		if c.counter[i] != 0 {
			return
		}
	}
}

// lricbBlocks runs Algorithm 4/5 over full blocks: for each block, derive
// y = evalLRP(currentKey, counter, finalize=true), then AES-ECB
// encrypt/decrypt the block under y, then increment the counter.
func (c *lrpCipher) lricbBlocks(in []byte, encrypt bool) ([]byte, error) {
	if len(in)%blockSize != 0 {
		return nil, newCryptoFailure("LRICB input not block aligned")
	}
	out := make([]byte, len(in))
	n := len(in) / blockSize
	for i := 0; i < n; i++ {
		y, err := evalLRP(c.p, c.currentKey(), c.counter, true)
		if err != nil {
			return nil, err
		}
		start := i * blockSize
		block := in[start : start+blockSize]
		var outBlock []byte
		if encrypt {
			outBlock, err = aesECBEncrypt(y, block)
		} else {
			outBlock, err = aesECBDecrypt(y, block)
		}
		if err != nil {
			return nil, err
		}
		copy(out[start:start+blockSize], outBlock)
		c.incrementCounter()
	}
	return out, nil
}

// encryptAll encrypts src, applying ISO/IEC 9797-1 method-2 padding when
// padCounter is true (src must then be non-empty); when false, src must
// already be a non-zero multiple of 16 bytes.
func (c *lrpCipher) encryptAll(src []byte) ([]byte, error) {
	if c.padCounter {
		if len(src) == 0 {
			return nil, newCryptoFailure("LRP padded encryption requires non-empty input")
		}
		return c.lricbBlocks(padISO9797M2(src), true)
	}
	if len(src) == 0 || len(src)%blockSize != 0 {
		return nil, newCryptoFailure("LRP unpadded encryption requires block-aligned input")
	}
	return c.lricbBlocks(src, true)
}

// decryptAll decrypts src, stripping ISO/IEC 9797-1 method-2 padding when
// padCounter is true; otherwise src must be a non-zero multiple of 16 bytes
// and no padding is removed.
func (c *lrpCipher) decryptAll(src []byte) ([]byte, error) {
	if len(src) == 0 || len(src)%blockSize != 0 {
		return nil, newCryptoFailure("LRP decryption requires block-aligned input")
	}
	plain, err := c.lricbBlocks(src, false)
	if err != nil {
		return nil, err
	}
	if !c.padCounter {
		return plain, nil
	}
	return unpadISO9797M2(plain)
}
