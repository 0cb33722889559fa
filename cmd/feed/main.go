// Command feed is the Matchfeed CLI.
//
// Usage:
//
//	matchfeed events --type football
//	matchfeed events --type all --json
//	matchfeed chat "what football games are today"
//	matchfeed classify "when do the Lakers play"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/matchfeed/internal/assist"
	"github.com/albapepper/matchfeed/internal/chat"
	"github.com/albapepper/matchfeed/internal/config"
	"github.com/albapepper/matchfeed/internal/event"
	"github.com/albapepper/matchfeed/internal/feed"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "matchfeed",
		Short: "Sports event feed and chat CLI",
	}

	root.AddCommand(eventsCmd())
	root.AddCommand(chatCmd())
	root.AddCommand(classifyCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// events command
// --------------------------------------------------------------------------

func eventsCmd() *cobra.Command {
	var category string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Fetch upcoming events for a sport or all sports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, cfg *config.Config) error {
				svc := feed.NewFromConfig(cfg, logger, time.Now)
				events := svc.Events(ctx, category)

				if asJSON {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(events)
				}
				fmt.Println(chat.FormatEvents(events, category))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "type", event.CategoryAll, "Sport category (football, basketball, cricket, all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of formatted text")
	return cmd
}

// --------------------------------------------------------------------------
// chat command
// --------------------------------------------------------------------------

func chatCmd() *cobra.Command {
	var rulesOnly bool
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the chat service a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, cfg *config.Config) error {
				feedSvc := feed.NewFromConfig(cfg, logger, time.Now)

				var completer chat.Completer
				if !rulesOnly {
					if ai := assist.NewFromConfig(cfg); ai != nil {
						completer = ai
					}
				}

				chatSvc, err := chat.NewFromConfig(cfg, feedSvc, completer, logger)
				if err != nil {
					return err
				}

				fmt.Println(chatSvc.Respond(ctx, strings.Join(args, " ")))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&rulesOnly, "rules-only", false, "Skip AI assist even when configured")
	return cmd
}

// --------------------------------------------------------------------------
// classify command
// --------------------------------------------------------------------------

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [query]",
		Short: "Show the topic/intent classification for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, cfg *config.Config) error {
				ps := chat.DefaultPatterns()
				if cfg.PatternsFile != "" {
					loaded, err := chat.LoadPatterns(cfg.PatternsFile)
					if err != nil {
						return err
					}
					ps = loaded
				}
				r, err := chat.NewResolver(ps)
				if err != nil {
					return err
				}

				c := r.Classify(strings.Join(args, " "))
				out := map[string]interface{}{
					"topic":      c.Topic,
					"intent":     c.Intent,
					"parameters": c.Params,
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWith handles config loading and context cancellation.
func runWith(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	return fn(ctx, cfg)
}
