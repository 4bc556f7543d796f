package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"gitlab.com/tozd/go/errors"

	"unstruct/internal/cppgen"
	"unstruct/internal/layout"
	"unstruct/internal/output"
	"unstruct/internal/project"
)

type rootSummary struct {
	ID       uint64 `json:"id"`
	Type     string `json:"type"`
	Fields   int    `json:"fields"`
	Span     uint64 `json:"span"`
	SpanText string `json:"span_text"`
}

// buildRootSummaries lists every top-level struct in ascending offset
// order, mirroring the order emit defines them in.
func buildRootSummaries(tree *layout.Tree) []rootSummary {
	idx := tree.ChildIndex()
	var sums []rootSummary
	for _, id := range tree.SortedByOffset(idx[0]) {
		n, ok := tree.ByID(id)
		if !ok || n.Kind != layout.KindStruct {
			continue
		}
		span := tree.StructSpan(id, idx)
		sums = append(sums, rootSummary{
			ID:       id,
			Type:     cppgen.StructTypeName(n),
			Fields:   len(idx[id]),
			Span:     span,
			SpanText: humanize.Bytes(span),
		})
	}
	return sums
}

func cmdInfo(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	projPath := fs.String("project", "", "project document (JSON)")
	jsonOut := fs.Bool("json", false, "output as JSON")
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

	sums := buildRootSummaries(tree)
	if *jsonOut {
		return output.WriteJSON(*outPath, sums)
	}

	name := doc.Name
	if name == "" {
		name = *projPath
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s nodes, %d root structs\n",
		name, humanize.Comma(int64(tree.Len())), len(sums))
	for _, s := range sums {
		fmt.Fprintf(&b, "  %-6d %-24s %4d fields  %s\n", s.ID, s.Type, s.Fields, s.SpanText)
	}
	return output.WriteText(*outPath, b.String())
}
