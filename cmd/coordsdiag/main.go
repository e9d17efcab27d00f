// Command coordsdiag inspects named coordinates: it loads an axis layout from
// configuration and shows how keys, selections and broadcasting transform it.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
