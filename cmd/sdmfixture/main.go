// Command sdmfixture is the inverse of sdmdecode: given keys, a UID, a
// read counter, and a plaintext file, it emits the (piccEnc, sdmmac,
// encFile) triple a genuine NTAG 424 DNA tag would produce, for use as a
// test fixture or demo payload.
package main

import (
	"os"

	"github.com/taplink/sdmcore/cmd/sdmfixture/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
