package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sauti",
	Short: "sauti is a USSD menu/session engine",
	Long:  `sauti routes phone-keypad menus: author a menu as YAML, simulate it interactively, serve it to a USSD gateway, and report on closed sessions.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "menu.yaml", "Menu definition file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
