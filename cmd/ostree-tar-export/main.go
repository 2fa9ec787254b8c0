// Command ostree-tar-export is the thin CLI wrapper around the ostreetar
// package: flag parsing, configuration resolution, opening files, and
// dispatch into the library. It holds no export or reinjection logic of
// its own.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
