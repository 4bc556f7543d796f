// Package output writes unstruct results to files or standard output.
package output

import (
	"encoding/json"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// WriteHeader writes generated header text to path. "-" and the empty
// string mean standard output.
func WriteHeader(path, text string) error {
	return writeText(path, text)
}

// WriteGraphDOT writes DOT graph text to path. "-" and the empty string
// mean standard output.
func WriteGraphDOT(path, dot string) error {
	return writeText(path, dot)
}

// WriteText writes plain report text to path. "-" and the empty string
// mean standard output.
func WriteText(path, text string) error {
	return writeText(path, text)
}

// WriteJSON writes v as indented JSON to path. "-" and the empty string
// mean standard output.
func WriteJSON(path string, v any) error {
	if toStdout(path) {
		return encodeJSON(os.Stdout, "stdout", v)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()
	return encodeJSON(f, path, v)
}

func toStdout(path string) bool {
	return path == "" || path == "-"
}

func writeText(path, text string) error {
	if toStdout(path) {
		if _, err := os.Stdout.WriteString(text); err != nil {
			return errors.Errorf("output: write stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return errors.Errorf("output: write %s: %w", path, err)
	}
	return nil
}

func encodeJSON(w io.Writer, name string, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Errorf("output: encode %s: %w", name, err)
	}
	return nil
}
