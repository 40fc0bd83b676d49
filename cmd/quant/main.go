package main

import (
	"fmt"
	"os"

	"github.com/rustyeddy/analytics/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "quant:", err)
		os.Exit(1)
	}
}
