// Package textfile reads raw incident reports from a directory. Reports
// arrive as plain-text files, one per communiqué, already put through text
// extraction upstream.
package textfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/basinwatch/incident-data-etl/internal/domain"
)

// Reader lists and reads every report file in a directory.
type Reader struct {
	dir    string
	logger *slog.Logger
}

// NewReader creates a Reader over dir.
func NewReader(dir string, logger *slog.Logger) *Reader {
	return &Reader{dir: dir, logger: logger}
}

// Documents reads every .txt file in the directory, sorted by filename so a
// run is deterministic regardless of filesystem ordering. Subdirectories and
// other file types are skipped. A file that cannot be read is still listed,
// with ReadErr set instead of text.
func (r *Reader) Documents(ctx context.Context) ([]domain.RawDocument, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read raw directory %s: %w", r.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]domain.RawDocument, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		data, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			// An unreadable file costs only itself. The document is kept in
			// the run so it shows up in the per-document trace and counters.
			r.logger.Warn("report unreadable", "file", name, "error", err)
			docs = append(docs, domain.RawDocument{
				Name:    name,
				ReadErr: fmt.Errorf("read report %s: %w", name, err),
			})
			continue
		}
		docs = append(docs, domain.RawDocument{Name: name, Text: string(data)})
	}

	r.logger.Debug("raw directory listed", "dir", r.dir, "documents", len(docs))
	return docs, nil
}
