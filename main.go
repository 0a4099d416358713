package main

import (
	"os"

	"github.com/roach88/lootbench/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
