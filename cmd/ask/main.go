// Command ask answers a single question from the terminal using the same
// pipeline as the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/seanankenbruck/ti-bot/internal/app"
	"github.com/seanankenbruck/ti-bot/internal/config"
	"github.com/seanankenbruck/ti-bot/internal/observability"
	"github.com/seanankenbruck/ti-bot/internal/processor"
)

func main() {
	dataDir := flag.String("data", "", "directory holding the workbooks")
	provider := flag.String("provider", "", "LLM provider: openai, claude or none")
	raw := flag.Bool("raw", false, "print only the answer text")
	verbose := flag.Bool("v", false, "log pipeline details to stderr")
	flag.Parse()

	question := strings.Join(flag.Args(), " ")

	// Flags shadow the environment
	overrides := config.NewMapProvider(map[string]string{
		"DATA_DIR":     *dataDir,
		"LLM_PROVIDER": *provider,
	})
	ctx := context.Background()
	cfg, err := config.NewLoader(config.NewChainProvider(overrides, config.NewEnvProvider())).Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := observability.NopLogger()
	if *verbose {
		logger = observability.NewLoggerWithConfig("debug", "console", "ask").WithOutput(os.Stderr)
	}

	bot, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}
	defer bot.Close()

	var resp *processor.AskResponse
	if strings.TrimSpace(question) == "" {
		resp = bot.Router.MissingQuestion()
	} else {
		resp = bot.Router.Ask(ctx, question)
	}
	if *raw {
		fmt.Println(resp.Answer)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		log.Fatalf("Failed to encode answer: %v", err)
	}
}
