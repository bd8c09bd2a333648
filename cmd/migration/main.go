package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/live-corners/internal/app"
	"github.com/riskibarqy/live-corners/internal/config"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

var logger = logging.NewJSON(logging.LevelInfo).Named("migration")

var errUsage = errors.New("usage")

// command runs one migrator action with the arguments after its name.
type command struct {
	args string
	run  func(m *migrate.Migrate, args []string) error
}

var commands = map[string]command{
	"up": {run: func(m *migrate.Migrate, _ []string) error {
		if err := applied(m.Up()); err != nil {
			return err
		}
		logger.Info("migrations applied")
		return nil
	}},
	"down": {args: "[steps]", run: func(m *migrate.Migrate, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := parseNumber("down steps", args[0], 1)
			if err != nil {
				return err
			}
			steps = int(n)
		}
		if err := applied(m.Steps(-steps)); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", steps)
		return nil
	}},
	"version": {run: func(m *migrate.Migrate, _ []string) error {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			fmt.Println("version: none")
			fmt.Println("dirty: false")
		case err != nil:
			return fmt.Errorf("read version: %w", err)
		default:
			fmt.Printf("version: %d\n", version)
			fmt.Printf("dirty: %t\n", dirty)
		}
		return nil
	}},
	"force": {args: "<version>", run: func(m *migrate.Migrate, args []string) error {
		version, err := requiredNumber("version", args)
		if err != nil {
			return err
		}
		if version > uint64(^uint(0)>>1) {
			return fmt.Errorf("version %d is too large for this platform", version)
		}
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced version", "version", version)
		return nil
	}},
	"goto": {args: "<version>", run: func(m *migrate.Migrate, args []string) error {
		target, err := requiredNumber("target version", args)
		if err != nil {
			return err
		}
		if err := applied(m.Migrate(uint(target))); err != nil {
			return err
		}
		logger.Info("migrated", "version", target)
		return nil
	}},
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
			os.Exit(2)
		}
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(argv []string) error {
	if len(argv) == 0 {
		return errUsage
	}
	name := strings.ToLower(strings.TrimSpace(argv[0]))
	if name == "migrate" {
		name = "goto"
	}
	cmd, ok := commands[name]
	if !ok {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}).Named("migration")
	if strings.TrimSpace(cfg.DBURL) == "" {
		return errors.New("DB_URL is required")
	}

	dir, err := resolveMigrationsDir(
		os.Getenv("MIGRATIONS_DIR"),
		os.Getenv("MIGRATIONS_PATH"),
		"./db/migrations",
		"/app/db/migrations",
	)
	if err != nil {
		return err
	}

	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, app.NormalizeDBURL(strings.TrimSpace(cfg.DBURL), cfg.DBDisablePreparedBinary))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	logger.Info("running migration command", "command", name, "source", source)
	return cmd.run(m, argv[1:])
}

// applied treats "nothing to do" as success.
func applied(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func requiredNumber(what string, args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s argument is required", what)
	}
	return parseNumber(what, args[0], 0)
}

func parseNumber(what, raw string, minimum uint64) (uint64, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", what, raw, err)
	}
	if value < minimum {
		return 0, fmt.Errorf("%s must be >= %d", what, minimum)
	}
	return value, nil
}

func resolveMigrationsDir(candidates ...string) (string, error) {
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found in %v", candidates)
}

func printUsage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n", bin)
	for _, name := range []string{"up", "down", "version", "force", "goto"} {
		fmt.Fprintf(os.Stderr, "  %s %s %s\n", bin, name, commands[name].args)
	}
	fmt.Fprintf(os.Stderr, "example: %s goto 1772409600\n", bin)
}
