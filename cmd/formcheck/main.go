// Package main provides formcheck, a command-line runner for the employee
// form normalizer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "formcheck",
	Short: "Validate employee attribute files",
	Long:  "formcheck runs the employee form normalizer on a YAML or JSON file of field values and can submit the result for prediction.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
