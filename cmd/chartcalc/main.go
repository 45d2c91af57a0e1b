// chartcalc computes chart-ready indicator overlays from OHLCV bar CSVs
// and filters corporate events for chart annotation. It is thin glue
// around the indicator core: no market-data fetching, no persistence
// beyond the CSV files it is told to write, no rendering.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
