package main

import (
	"os"

	"github.com/ssebench/ssebench/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
