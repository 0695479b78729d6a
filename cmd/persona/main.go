package main

import (
	"os"

	"github.com/suykerbuyk/persona-gen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
