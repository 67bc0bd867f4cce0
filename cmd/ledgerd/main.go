// Package main is the entry point for the ledgerd service and CLI.
package main

import (
	"os"

	"github.com/tinoosan/moneyledger/cmd/ledgerd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
