// Command travelgo-admin inspects and maintains TravelGo's Redis-backed state.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1) //nolint:forbidigo // CLI entrypoint exits non-zero on failure.
	}
}
