// SPDX-License-Identifier: EPL-2.0

// Command wavedit inspects, renders and plays multitrack session files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
