package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lemonberrylabs/losp/pkg/parser"
)

func checkFile(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := readSource(path)
	if err != nil {
		return err
	}

	if _, err := parser.Parse(src, nil); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("%s: OK\n", path)
	return nil
}
