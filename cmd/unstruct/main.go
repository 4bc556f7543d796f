package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	slogctx "github.com/veqryn/slog-context"
)

func main() {
	ctx := setupLogging(context.Background())

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "emit":
		err = cmdEmit(ctx, os.Args[2:])
	case "graph":
		err = cmdGraph(ctx, os.Args[2:])
	case "info":
		err = cmdInfo(ctx, os.Args[2:])
	case "validate":
		err = cmdValidate(ctx, os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes logs to stderr so generated output can go to
// stdout untouched. UNSTRUCT_DEBUG=1 raises verbosity.
func setupLogging(ctx context.Context) context.Context {
	level := slog.LevelInfo
	if os.Getenv("UNSTRUCT_DEBUG") != "" {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "2006-01-02 15:04 05.0000",
		AddSource:  level == slog.LevelDebug,
	})
	logger := slog.New(slogctx.NewHandler(handler, nil))
	slog.SetDefault(logger)
	return slogctx.NewCtx(ctx, logger)
}

func usage() {
	fmt.Fprintf(os.Stderr, `unstruct — C++ header generator for reversed memory layouts

Usage:
  unstruct emit     --project <path> [--root <id>] [--config <path>] [--out <path>]  Generate C++ structs
  unstruct graph    --project <path> [--title <s>] [--out <path>]                    Type reference graph as DOT
  unstruct info     --project <path> [--json] [--out <path>]                         Summarize top-level structs
  unstruct validate --project <path> [--strict]                                      Lint the node tree

Flags:
  --project <path>   Project document (JSON)
  --config <path>    Generator config (YAML): type aliases, pointer width
  --root <id>        Emit only this struct and its dependencies
  --out <path>       Output file ("-" = stdout, default)
  --json             Machine-readable output
  --strict           Exit nonzero when the linter reports diagnostics
`)
}
