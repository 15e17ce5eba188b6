package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/seanankenbruck/ti-bot/internal/app"
	"github.com/seanankenbruck/ti-bot/internal/config"
	"github.com/seanankenbruck/ti-bot/internal/database"
	apperrors "github.com/seanankenbruck/ti-bot/internal/errors"
	"github.com/seanankenbruck/ti-bot/internal/observability"
	"github.com/seanankenbruck/ti-bot/internal/tables"
)

const usage = `Usage: migrate [flags] <command> [arg]

Commands:
  up          apply all pending migrations (default)
  down        roll back every migration
  steps N     apply N migrations, negative N rolls back
  force V     set the schema version without running migrations
  version     print the current schema version

Flags:
`

func main() {
	path := flag.String("path", "", "directory of migration files (default: embedded)")
	seed := flag.Bool("seed", false, "after migrating, load the xlsx workbooks into the database")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.NewDefaultLoader().Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := observability.NewLoggerWithConfig(cfg.Log.Level, cfg.Log.Format, "migrate")
	defer logger.Sync()

	pg := app.PostgresConfig(cfg.Database)
	fmt.Printf("Connecting to database: %s@%s:%s/%s\n", pg.Username, pg.Host, pg.Port, pg.Database)

	migrator, err := database.NewMigrator(database.MigrationConfig{
		DatabaseURL:    pg.URL(),
		MigrationsPath: *path,
	}, logger)
	if err != nil {
		fatal("Failed to initialize migrations", err)
	}
	defer migrator.Close()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	if err := run(migrator, command, flag.Arg(1)); err != nil {
		fatal(fmt.Sprintf("Migration %s failed", command), err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		log.Fatalf("Failed to read schema version: %v", err)
	}
	fmt.Printf("✓ Schema at version %d (dirty: %t)\n", version, dirty)

	if !*seed {
		return
	}

	t, err := tables.NewXLSXSource(app.XLSXConfig(cfg.Data)).Load(ctx)
	if err != nil {
		fatal("Failed to read workbooks", err)
	}
	counts, err := database.Seed(ctx, migrator.DB(), t)
	if err != nil {
		fatal("Seeding failed", err)
	}
	fmt.Printf("✓ Seeded %d rooms, %d departments, %d general answers\n",
		counts["rooms"], counts["departments"], counts["general"])
}

func run(migrator *database.Migrator, command, arg string) error {
	switch command {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	case "version":
		return nil
	case "steps", "force":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return apperrors.NewInvalidInputError(command, fmt.Sprintf("expected an integer, got %q", arg)).
				WithSuggestion("Pass the target as the second argument, for example: migrate steps -1")
		}
		if command == "steps" {
			return migrator.Steps(n)
		}
		return migrator.Force(n)
	default:
		flag.Usage()
		os.Exit(2)
		return nil
	}
}

// fatal prints the friendly form of enhanced errors before exiting
func fatal(prefix string, err error) {
	var enhanced *apperrors.EnhancedError
	if errors.As(err, &enhanced) {
		log.Fatalf("%s: %s", prefix, enhanced.UserMessage())
	}
	log.Fatalf("%s: %v", prefix, err)
}
