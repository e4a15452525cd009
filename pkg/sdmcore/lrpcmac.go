package sdmcore

// lrpCMAC computes the LRP-CMAC of msg under the plaintexts table p and
// currentKey, the LRP analogue of aesCMAC: the AES-ECB step of ordinary
// CMAC is replaced by an LRP evaluation, and the subkeys K1/K2 are
// derived from K0 = evalLRP(p, currentKey, 0^128, finalize=true) rather
// than from AES_ECB(key, 0).
func lrpCMAC(p [][]byte, currentKey []byte, msg []byte) ([]byte, error) {
	k0, err := evalLRP(p, currentKey, lrpZeroBlock, true)
	if err != nil {
		return nil, err
	}
	k1 := gfDouble(k0)
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

	state := make([]byte, blockSize)
	for i := 0; i < n-1; i++ {
		start := i * blockSize
		block := msg[start : start+blockSize]
		xored := make([]byte, blockSize)
		xorBlock(xored, state, block)
		y, err := evalLRP(p, currentKey, xored, true)
		if err != nil {
			return nil, err
		}
		state = y
	}
	final := make([]byte, blockSize)
	xorBlock(final, state, last)
	return evalLRP(p, currentKey, final, true)
}
