package main

import (
	"fmt"
	"os"

	"github.com/okayama-mayu/rails-engine/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
