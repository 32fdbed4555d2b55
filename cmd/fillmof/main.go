//Command fillmof packs random copies of an adsorbate into the cell of a
//periodic structure, such as a MOF, and writes the filled structures.
//
//	fillmof fill --adsorbate CO2 --adsorbent mof.xyz -n 10 --structures 3 -o filled.xyz
//	fillmof molecules
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := buildRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fillmof:", err)
		os.Exit(1)
	}
}
