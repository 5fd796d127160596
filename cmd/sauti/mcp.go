package main

import (
	"fmt"
	"os"

	mcpAdapter "github.com/sautiflow/sauti/pkg/adapters/mcp"
	"github.com/sautiflow/sauti/pkg/codec"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the menu simulator as an MCP server (stdio)",
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")

		graph, err := codec.Load(file)
		if err != nil {
			fmt.Printf("Error loading menu file: %v\n", err)
			os.Exit(1)
		}

		if err := mcpAdapter.NewServer(graph).ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
