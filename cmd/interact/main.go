package main

import (
	"os"

	"github.com/code-payments/interact-dapp/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
