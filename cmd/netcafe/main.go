package main

import (
	"os"

	"github.com/deppfellow/netcafe/cmd/netcafe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
