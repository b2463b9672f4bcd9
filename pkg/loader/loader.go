// Package loader reads analysis input from a local file, stdin, or a web
// URL. HTML pages are reduced to their readable article text.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinSource selects standard input as the text source.
const StdinSource = "-"

// Loader resolves a source argument into plain text.
type Loader struct {
	stdin io.Reader
	web   *WebLoader
}

// NewLoader creates a Loader reading stdin from the given reader.
// A nil reader falls back to os.Stdin.
func NewLoader(stdin io.Reader) *Loader {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Loader{
		stdin: stdin,
		web:   NewWebLoader(),
	}
}

// Load returns the text behind source: "-" reads stdin, http(s) URLs are
// fetched and reduced to readable text, anything else is a file path.
func (l *Loader) Load(ctx context.Context, source string) (string, error) {
	switch {
	case source == StdinSource:
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil

	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return l.web.Fetch(ctx, source)

	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}
}
