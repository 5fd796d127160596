package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sautiflow/sauti/internal/adapters/postgres"
	redisAdapter "github.com/sautiflow/sauti/internal/adapters/redis"
	"github.com/sautiflow/sauti/pkg/analytics"
	"github.com/sautiflow/sauti/pkg/codec"
	"github.com/sautiflow/sauti/pkg/domain"
	"github.com/sautiflow/sauti/pkg/ports"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report on an application's closed sessions",
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		appID, _ := cmd.Flags().GetString("app")
		redisAddr, _ := cmd.Flags().GetString("redis")
		postgresDSN, _ := cmd.Flags().GetString("postgres")
		sinceRaw, _ := cmd.Flags().GetString("since")
		untilRaw, _ := cmd.Flags().GetString("until")

		ctx := context.Background()

		var (
			graph    *domain.MenuGraph
			sessions ports.SessionStore
			err      error
		)

		switch {
		case postgresDSN != "":
			store, connErr := postgres.Connect(ctx, postgresDSN)
			if connErr != nil {
				fmt.Printf("Error connecting to postgres: %v\n", connErr)
				os.Exit(1)
			}
			defer store.Close()
			sessions = store
			graph, err = store.GraphStore().Get(ctx, appID)

		case redisAddr != "":
			// Redis holds sessions only; the graph comes from the file.
			sessions = redisAdapter.New(redisAddr, "", 0)
			graph, err = codec.Load(file)

		default:
			fmt.Println("stats needs a session store: pass --redis or --postgres")
			os.Exit(1)
		}
		if err != nil {
			fmt.Printf("Error loading menu: %v\n", err)
			os.Exit(1)
		}
		if appID == "" {
			appID = graph.ApplicationID
		}

		win, err := parseWindow(sinceRaw, untilRaw)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		records, err := sessions.ListByApplication(ctx, appID, win.Since, win.Until)
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		printReport(appID, analytics.Aggregate(graph, records, win))
	},
}

func parseWindow(since, until string) (analytics.Window, error) {
	var win analytics.Window
	if since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return win, fmt.Errorf("invalid --since: %v", err)
		}
		win.Since = t
	}
	if until != "" {
		t, err := time.Parse(time.RFC3339, until)
		if err != nil {
			return win, fmt.Errorf("invalid --until: %v", err)
		}
		win.Until = t
	}
	return win, nil
}

func printReport(appID string, report analytics.Report) {
	fmt.Printf("application: %s\n", appID)
	fmt.Printf("sessions:    %d\n", report.TotalSessions)
	fmt.Printf("unique:      %d\n", report.UniqueUsers)
	fmt.Printf("avg length:  %.2f inputs\n", report.AvgSessionLength)
	fmt.Printf("completion:  %.1f%%\n", report.CompletionRate*100)

	if len(report.TopMenuPaths) > 0 {
		fmt.Println("top paths:")
		for _, p := range report.TopMenuPaths {
			fmt.Printf("  %5d  %s\n", p.Count, p.Path)
		}
	}
	if len(report.PeakHours) > 0 {
		fmt.Println("peak hours:")
		for _, h := range report.PeakHours {
			fmt.Printf("  %5d  %02d:00\n", h.Count, h.Hour)
		}
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("app", "", "Application ID (defaults to the menu file's)")
	statsCmd.Flags().String("redis", "", "Redis address for session storage (host:port)")
	statsCmd.Flags().String("postgres", "", "Postgres DSN for session and menu storage")
	statsCmd.Flags().String("since", "", "Window start (RFC3339)")
	statsCmd.Flags().String("until", "", "Window end, exclusive (RFC3339)")
}
