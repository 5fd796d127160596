package main

import (
	"fmt"
	"os"

	"github.com/sautiflow/sauti/internal/validator"
	"github.com/sautiflow/sauti/pkg/codec"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a menu file for structural issues",
	Long: `Runs the advisory structural checks over a menu definition.
Findings never block anything unless --strict is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		strict, _ := cmd.Flags().GetBool("strict")

		graph, err := codec.Load(file)
		if err != nil {
			fmt.Printf("Error loading menu file: %v\n", err)
			os.Exit(1)
		}

		issues := validator.Validate(graph)
		if len(issues) == 0 {
			fmt.Printf("%s: %d nodes, no issues\n", file, len(graph.Nodes))
			return
		}

		fmt.Printf("%s: %d issue(s)\n", file, len(issues))
		for _, issue := range issues {
			if issue.NodeID != "" {
				fmt.Printf("  [%s] %s: %s\n", issue.Code, issue.NodeID, issue.Message)
			} else {
				fmt.Printf("  [%s] %s\n", issue.Code, issue.Message)
			}
		}
		if strict {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Exit non-zero when issues are found")
}
