// Command sdmdecode decrypts and verifies a captured NTAG 424 DNA SDM
// message triple against a configured key set, reporting the decrypted
// UID, read counter, and file bytes, or the failure kind.
package main

import (
	"os"

	"github.com/taplink/sdmcore/cmd/sdmdecode/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
