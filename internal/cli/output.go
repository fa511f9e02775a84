package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// printer writes command results as text lines or as indented JSON.
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(opts *RootOptions, w io.Writer) *printer {
	return &printer{format: opts.Format, w: w}
}

// print emits data as JSON, or calls text to render it otherwise.
func (p *printer) print(data any, text func(w io.Writer)) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	}
	text(p.w)
	return nil
}
