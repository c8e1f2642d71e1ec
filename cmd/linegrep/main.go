package main

import (
	"os"

	"github.com/dl/linegrep/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
