package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra/doc"

	"github.com/suykerbuyk/persona-gen/internal/cli"
	"github.com/suykerbuyk/persona-gen/internal/help"
)

func main() {
	dir := "man"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "gen-man: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	header := &doc.GenManHeader{
		Title:   help.Persona.ManTitle(),
		Section: "1",
		Date:    &now,
		Source:  help.Persona.Name + " " + help.Version,
		Manual:  help.Persona.Name + " manual",
	}

	root := cli.NewRootCommand()
	root.DisableAutoGenTag = true
	if err := doc.GenManTree(root, header, dir); err != nil {
		fmt.Fprintf(os.Stderr, "gen-man: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  %s/%s.1\n", dir, help.Persona.Name)
}
