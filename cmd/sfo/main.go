package main

import (
	"os"

	"github.com/arthur-debert/sfo/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
