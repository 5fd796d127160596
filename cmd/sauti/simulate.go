package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sautiflow/sauti"
	"github.com/sautiflow/sauti/internal/cli"
	"github.com/sautiflow/sauti/internal/presentation/tui"
	"github.com/sautiflow/sauti/pkg/codec"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the interactive menu simulator",
	Long: `Walks a menu the way a handset would: digits step through options,
"b" goes back one step, "r" resets the session, "q" quits.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		debug, _ := cmd.Flags().GetBool("debug")
		subscriber, _ := cmd.Flags().GetString("subscriber")

		graph, err := codec.Load(file)
		if err != nil {
			fmt.Printf("Error loading menu file: %v\n", err)
			os.Exit(1)
		}

		interactive := cli.IsInteractive()
		if interactive {
			tui.PrintBanner(sauti.Version)
		}

		err = cli.RunSimulator(context.Background(), cli.SimulateOptions{
			Graph:        graph,
			In:           os.Stdin,
			Out:          os.Stdout,
			SubscriberID: subscriber,
			Logger:       cli.CreateLogger(debug),
			Plain:        !interactive,
		})
		if err != nil {
			fmt.Printf("Simulator error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("subscriber", "254700000000", "Subscriber number recorded on the session")
}
