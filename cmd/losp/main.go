// Package main is the entry point for the losp command-line evaluator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "losp",
	Short: "Losp scripting language evaluator",
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Parse and evaluate a Losp source file, printing its result",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a Losp source file and report syntax errors without evaluating it",
	Args:  cobra.ExactArgs(1),
	RunE:  checkFile,
}

func init() {
	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("losp version {{.Version}}\n")

	runCmd.Flags().String("globals", "", "YAML file of name: value bindings to set before evaluation")
	runCmd.Flags().Bool("ast", false, "print the parsed AST instead of evaluating")

	rootCmd.AddCommand(runCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
