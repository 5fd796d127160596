package main

import (
	"fmt"

	"github.com/sautiflow/sauti"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sauti version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sauti %s\n", sauti.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
