package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/factbook/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "factbook:", err)
		os.Exit(1)
	}
}
