package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/zboralski/lattice/render"
	"gitlab.com/tozd/go/errors"

	"unstruct/internal/output"
	"unstruct/internal/project"
	"unstruct/internal/typegraph"
)

func cmdGraph(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	projPath := fs.String("project", "", "project document (JSON)")
	title := fs.String("title", "", "graph title (defaults to project name)")
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

	g := typegraph.BuildRefGraph(tree)

	name := *title
	if name == "" {
		name = doc.Name
	}
	if name == "" {
		name = "unstruct"
	}

	if err := output.WriteGraphDOT(*outPath, render.DOT(g, name)); err != nil {
		return err
	}
	slog.InfoContext(ctx, "wrote type graph", "nodes", len(g.Nodes), "edges", len(g.Edges))
	return nil
}
