// The grafiki command computes monthly staff rosters for a hospital-imaging
// department from a planning workbook.
package main

import (
	"os"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
