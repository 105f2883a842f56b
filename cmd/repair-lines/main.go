// Command repair-lines re-joins hard-wrapped book lines. It reads the book
// from the file given as argument, or stdin, and writes the result to stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/heartmarshall/myenglish-vocab/internal/ingest"
)

func main() {
	in := io.Reader(os.Stdin)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "repair-lines: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "repair-lines: %v\n", err)
		os.Exit(1)
	}
	if _, err := io.WriteString(os.Stdout, ingest.RepairLines(string(raw))); err != nil {
		fmt.Fprintf(os.Stderr, "repair-lines: %v\n", err)
		os.Exit(1)
	}
}
