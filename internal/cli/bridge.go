package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/adrianariton/cellbridge/internal/bridge"
	"github.com/adrianariton/cellbridge/internal/config"
	"github.com/adrianariton/cellbridge/internal/domain"
	"github.com/adrianariton/cellbridge/internal/host"
	"github.com/adrianariton/cellbridge/internal/store"
	"github.com/adrianariton/cellbridge/internal/tools"
)

func newBridgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Manage the orchestrator connection",
	}

	cmd.AddCommand(newBridgeRunCmd())
	return cmd
}

func newBridgeRunCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to the orchestrator and start the bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.Bridge.ServerURL = serverURL
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			if err := paths.EnsureDirs(); err != nil {
				return err
			}

			// Transcript store (SQLite or in-memory)
			var transcript bridge.Transcript
			if cfg.Transcript.Store == "sqlite" {
				dbPath := paths.TranscriptDB(&cfg)
				db, err := store.Open(dbPath, log)
				if err != nil {
					return fmt.Errorf("opening database: %w", err)
				}
				defer db.Close()
				transcript = store.NewSQLiteTranscript(db)
				log.Info().Str("path", dbPath).Msg("using SQLite transcript store")
			} else {
				transcript = bridge.NewMemoryTranscript()
				log.Info().Msg("using in-memory transcript store")
			}

			// The in-memory workbook stands in for the host document.
			workbook := host.NewWorkbook()
			executor := tools.NewExecutor(tools.NewRegistry(workbook), log)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			session := bridge.NewSession(
				cfg.Bridge.ServerURL,
				cfg.Bridge.Origin,
				time.Duration(cfg.Bridge.HandshakeTimeoutSeconds)*time.Second,
				log,
			)
			if err := session.Establish(ctx); err != nil {
				return fmt.Errorf("connecting to orchestrator: %w", err)
			}
			defer session.Close()

			ready := &bridge.ReadyFlag{}
			router := bridge.NewRouter(session, executor, transcript, ready, log,
				bridge.WithReplyHook(printReply))

			// Everything is wired; tool requests may flow now.
			ready.Set()

			routerDone := make(chan error, 1)
			go func() { routerDone <- router.Run(ctx) }()

			fmt.Println("Connected. Type a message and press enter; ctrl-d to quit.")
			go chatLoop(router)

			select {
			case <-ctx.Done():
				return nil
			case err := <-routerDone:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "override orchestrator WebSocket URL")
	return cmd
}

// chatLoop forwards stdin lines as chat prompts until EOF.
func chatLoop(router *bridge.Router) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := router.SendChat(text); err != nil {
			fmt.Fprintln(os.Stderr, "send failed:", err)
			return
		}
	}
}

// printReply renders orchestrator entries on stdout.
func printReply(entry domain.Entry) {
	if len(entry.ToolsUsed) > 0 {
		fmt.Printf("assistant> %s  [tools: %s]\n", entry.Text, strings.Join(entry.ToolsUsed, ", "))
		return
	}
	fmt.Printf("assistant> %s\n", entry.Text)
}
