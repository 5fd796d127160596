package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sautiflow/sauti"
	httpAdapter "github.com/sautiflow/sauti/internal/adapters/http"
	"github.com/sautiflow/sauti/internal/adapters/postgres"
	redisAdapter "github.com/sautiflow/sauti/internal/adapters/redis"
	"github.com/sautiflow/sauti/internal/cli"
	"github.com/sautiflow/sauti/pkg/adapters/memory"
	"github.com/sautiflow/sauti/pkg/codec"
	"github.com/sautiflow/sauti/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway server",
	Long:  `Starts the engine behind a JSON API: the gateway callback, menu authoring, analytics and metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		debug, _ := cmd.Flags().GetBool("debug")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		postgresDSN, _ := cmd.Flags().GetString("postgres")

		logger := cli.CreateLogger(debug)

		var (
			graphs   ports.GraphStore
			sessions ports.SessionStore
			opts     []sauti.Option
		)

		switch {
		case postgresDSN != "":
			store, err := postgres.Connect(context.Background(), postgresDSN)
			if err != nil {
				fmt.Printf("Error connecting to postgres: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()
			if err := store.CreateSchema(context.Background()); err != nil {
				fmt.Printf("Error creating schema: %v\n", err)
				os.Exit(1)
			}
			graphs = store.GraphStore()
			sessions = store

		case redisAddr != "":
			client := backend.NewClient(&backend.Options{Addr: redisAddr})
			sessions = redisAdapter.NewFromClient(client)
			graphs = memory.NewGraphStore()
			opts = append(opts, sauti.WithLocker(redisAdapter.NewLocker(client, "sauti:")))

		default:
			graphs = memory.NewGraphStore()
			sessions = memory.NewSessionStore()
		}

		// Seed the graph store from the menu file when one is present.
		if _, err := os.Stat(file); err == nil {
			graph, err := codec.Load(file)
			if err != nil {
				fmt.Printf("Error loading menu file: %v\n", err)
				os.Exit(1)
			}
			if err := graphs.Save(context.Background(), graph); err != nil {
				fmt.Printf("Error seeding menu: %v\n", err)
				os.Exit(1)
			}
			logger.Info("menu loaded", "application_id", graph.ApplicationID, "nodes", len(graph.Nodes))
		}

		metrics := httpAdapter.NewMetrics()
		opts = append(opts,
			sauti.WithLogger(logger),
			sauti.WithLifecycleHooks(metrics.Hooks()),
		)
		engine := sauti.New(graphs, sessions, opts...)
		handler := httpAdapter.NewHandler(engine, httpAdapter.WithLogger(logger))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting sauti server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("sauti server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session storage (host:port)")
	serveCmd.Flags().String("postgres", "", "Postgres DSN for session and menu storage")
}
