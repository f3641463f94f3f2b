package main

import (
	"os"

	"github.com/dshills/devkit/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
