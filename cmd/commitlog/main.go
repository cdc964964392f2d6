package main

import (
	"os"

	"github.com/ariel-frischer/commitlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
