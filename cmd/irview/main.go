package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

func main() {
	var (
		inFile = flag.String("in", "", "Path to a bitcode file to explore")
		demo   = flag.Bool("demo", false, "Explore the built-in demo module")
	)
	flag.Parse()

	if *inFile == "" && !*demo {
		fmt.Fprintln(os.Stderr, "Usage: irview -in <file.bc>")
		fmt.Fprintln(os.Stderr, "       irview -demo")
		os.Exit(1)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: irview needs a terminal; use irdump for plain output")
		os.Exit(1)
	}

	p := tea.NewProgram(newExplorerModel(*inFile, *demo), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
