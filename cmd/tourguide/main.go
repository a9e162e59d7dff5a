// Copyright 2025 LocaTour
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	tourguide "github.com/locatour/tourguide"
	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/dataset"
	"github.com/locatour/tourguide/httpapi"
)

func main() {
	// Missing .env is fine; flags and real env still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "tourguide",
		Usage: "Conversational travel guide for Ilocos Norte",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"TOURGUIDE_LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the assistant over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"TOURGUIDE_ADDR"},
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the chat-log database directory (in-memory when empty)",
						EnvVars: []string{"TOURGUIDE_DB"},
					},
					&cli.StringFlag{
						Name:    "dataset",
						Usage:   "Path to a JSON dataset (embedded dataset when empty)",
						EnvVars: []string{"TOURGUIDE_DATASET"},
					},
					&cli.IntFlag{
						Name:  "top-n",
						Usage: "Maximum results per chat turn",
						Value: tourguide.DefaultTopN,
					},
				},
			},
			{
				Name:   "chat",
				Usage:  "Chat with the assistant interactively",
				Action: chatCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the chat-log database directory (in-memory when empty)",
						EnvVars: []string{"TOURGUIDE_DB"},
					},
					&cli.StringFlag{
						Name:    "dataset",
						Usage:   "Path to a JSON dataset (embedded dataset when empty)",
						EnvVars: []string{"TOURGUIDE_DATASET"},
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a single question and print the answer",
				Action:    askCommand,
				ArgsUsage: "<question>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dataset",
						Usage:   "Path to a JSON dataset (embedded dataset when empty)",
						EnvVars: []string{"TOURGUIDE_DATASET"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newAssistant(c *cli.Context) (*tourguide.Assistant, error) {
	opts := []tourguide.AssistantOption{
		tourguide.WithTopN(c.Int("top-n")),
	}
	if db := c.String("db"); db != "" {
		opts = append(opts, tourguide.WithDataPath(db))
	}
	if path := c.String("dataset"); path != "" {
		records, err := dataset.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading dataset: %w", err)
		}
		opts = append(opts, tourguide.WithRecords(records))
	}
	return tourguide.NewAssistant(opts...)
}

func serveCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	server := &http.Server{
		Addr:              c.String("addr"),
		Handler:           httpapi.NewServer(assistant).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	fmt.Println("Ask me about places to visit or food to try in Ilocos Norte.")
	fmt.Println("Type 'quit' to exit.")

	var sessionID string
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		result, err := assistant.Chat(c.Context, sessionID, line)
		if err != nil {
			if errors.Is(err, core.ErrEmptyQuery) {
				continue
			}
			return err
		}
		sessionID = result.SessionID
		fmt.Println(result.Response)
	}
	return scanner.Err()
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	result, err := assistant.Chat(c.Context, "", question)
	if err != nil {
		return err
	}
	fmt.Println(result.Response)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
