// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package projector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/helper/gc"
)

const (
	// FormatJSON renders indented JSON.
	FormatJSON = "json"
	// FormatYAML renders YAML.
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned by Render for an unsupported output format.
var ErrUnknownFormat = errors.New("projector: unknown output format")

// Render writes v to w in the given format followed by a newline.
//
// Parameters:
//   - w: Destination writer
//   - v: Value to render, typically a KeyMap
//   - format: FormatJSON or FormatYAML
//   - indent: Spaces per nesting level; 0 renders compact JSON
//
// Returns:
//   - error: ErrUnknownFormat, or any encoding or write error
func Render(w io.Writer, v any, format string, indent int) error {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		if indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", indent))
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(buf)
		if indent > 0 {
			enc.SetIndent(indent)
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// RenderLines writes each line to w followed by a newline.
func RenderLines(w io.Writer, lines []string) error {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
