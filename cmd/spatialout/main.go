package main

import (
	"os"

	"github.com/bjaus/spatialout/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
