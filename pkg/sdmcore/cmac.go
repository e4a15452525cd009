package sdmcore

import "crypto/aes"

// aesCMAC computes the AES-128 CMAC of msg per NIST SP 800-38B, returning
// 16 bytes.
func aesCMAC(key, msg []byte) ([]byte, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, newCryptoFailure("invalid CMAC key")
	}

	zero := make([]byte, blockSize)
	l := make([]byte, blockSize)
	c.Encrypt(l, zero)
	k1 := gfDouble(l)
	k2 := gfDouble(k1)

	n := (len(msg) + blockSize - 1) / blockSize
	if n == 0 {
		n = 1
	}
	lastComplete := len(msg) != 0 && len(msg)%blockSize == 0

	last := make([]byte, blockSize)
	if lastComplete {
		copy(last, msg[(n-1)*blockSize:])
		xorBlock(last, last, k1)
	} else {
		remain := len(msg) - (n-1)*blockSize
		if remain > 0 {
			copy(last, msg[(n-1)*blockSize:])
		}
		last[remain] = 0x80
		xorBlock(last, last, k2)
	}

	x := make([]byte, blockSize)
	y := make([]byte, blockSize)
	for i := 0; i < n-1; i++ {
		start := i * blockSize
		xorBlock(y, x, msg[start:start+blockSize])
		c.Encrypt(x, y)
	}
	xorBlock(y, x, last)
	c.Encrypt(x, y)
	return x, nil
}

// truncateOddBytes extracts the 8 odd-indexed bytes (1,3,5,...,15) of a
// 16-byte CMAC digest, forming the 8-byte SDMMAC.
func truncateOddBytes(mac []byte) []byte {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = mac[1+i*2]
	}
	return out
}
