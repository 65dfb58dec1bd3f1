package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Globals is shared by every command
type Globals struct {
	Env      string `name:"env" env:"GO_ENV" default:"development" help:"Runtime environment"`
	LogLevel string `name:"log-level" env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level"`

	logger *zap.Logger
}

// CLI is the command line of the portfolio server
type CLI struct {
	Globals

	Serve    ServeCmd    `cmd:"" default:"withargs" help:"Run the HTTP server"`
	Calendar CalendarCmd `cmd:"" help:"Print a month grid"`
	Classify ClassifyCmd `cmd:"" help:"Classify WMO weather codes"`
	Carousel CarouselCmd `cmd:"" help:"Preview stats carousel positions"`
}

// AfterApply builds the logger once flags and environment are parsed.
func (g *Globals) AfterApply() error {
	logger, err := newLogger(g.LogLevel)
	if err != nil {
		return err
	}
	g.logger = logger
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func main() {
	// Load environment variables before kong reads env tags
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using system environment")
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("portfolio"),
		kong.Description("Portfolio site backend"),
		kong.UsageOnError(),
	)
	defer func() { _ = cli.logger.Sync() }()

	err := ctx.Run(&cli.Globals)
	if err != nil {
		cli.logger.Error("Command failed", zap.String("command", ctx.Command()), zap.Error(err))
	}
	ctx.FatalIfErrorf(err)
}
