package main

import (
	"context"
	"flag"
	"log/slog"

	"gitlab.com/tozd/go/errors"

	"unstruct/internal/cppgen"
	"unstruct/internal/output"
	"unstruct/internal/project"
)

func cmdEmit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("emit", flag.ExitOnError)
	projPath := fs.String("project", "", "project document (JSON)")
	rootID := fs.Uint64("root", 0, "emit only this struct id and its dependencies")
	cfgPath := fs.String("config", "", "generator config (YAML)")
	outPath := fs.String("out", "-", `output file ("-" = stdout)`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *projPath == "" {
		return errors.New("--project is required")
	}

	doc, err := project.Load(ctx, *projPath)
	if err != nil {
		return err
	}
	tree, err := doc.Tree()
	if err != nil {
		return err
	}

	cfg, err := project.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}
	opts, err := cfg.GeneratorOptions()
	if err != nil {
		return err
	}
	// Config wins over the document; both unset falls back to 64-bit.
	if opts.PointerWidth == 0 {
		opts.PointerWidth = doc.PointerWidth
	}

	var gen cppgen.Emitter = cppgen.New(opts)
	if cfg.Disabled {
		gen = cppgen.Disabled{}
	}

	var text string
	if *rootID != 0 {
		text = gen.EmitRoot(tree, *rootID)
		if text == "" && !cfg.Disabled {
			slog.WarnContext(ctx, "root is not a struct node, nothing to emit", "root", *rootID)
		}
	} else {
		text = gen.EmitAll(tree)
	}

	return output.WriteHeader(*outPath, text)
}
