package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Destination opens the report destination. An empty path means standard
// output, which must not be closed; Close is a no-op in that case. A path
// that cannot be created is a fatal error for the run.
func Destination(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot write report to %q: %w", path, err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
