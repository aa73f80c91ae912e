package main

import (
	"os"

	"github.com/jeanhaley32/runtime-launcher/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
