package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"gitlab.com/tozd/go/errors"

	"unstruct/internal/layout"
	"unstruct/internal/project"
)

func cmdValidate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	projPath := fs.String("project", "", "project document (JSON)")
	strict := fs.Bool("strict", false, "exit nonzero when diagnostics are found")
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

	diags := layout.Lint(tree)
	for _, d := range diags {
		fmt.Println(d.String())
	}

	if len(diags) == 0 {
		slog.InfoContext(ctx, "project is clean", "nodes", tree.Len())
		return nil
	}
	slog.InfoContext(ctx, "lint finished", "diagnostics", len(diags))
	if *strict {
		return errors.Errorf("validate: %d diagnostics", len(diags))
	}
	return nil
}
