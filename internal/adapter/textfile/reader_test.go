package textfile

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDocumentsSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_comunicado.txt", "texto b")
	writeFile(t, dir, "a_comunicado.txt", "texto a")
	writeFile(t, dir, "notas.md", "ignorado")
	writeFile(t, dir, "C_COMUNICADO.TXT", "texto c")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "procesados"), 0o755))

	docs, err := NewReader(dir, testLogger()).Documents(context.Background())
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.Equal(t, "C_COMUNICADO.TXT", docs[0].Name)
	assert.Equal(t, "a_comunicado.txt", docs[1].Name)
	assert.Equal(t, "b_comunicado.txt", docs[2].Name)
	assert.Equal(t, "texto a", docs[1].Text)
}

func TestDocumentsKeepsUnreadableFileWithError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bueno.txt", "texto legible")
	// Dangling symlink: listed as a .txt file but unreadable.
	require.NoError(t, os.Symlink(filepath.Join(dir, "no-existe"), filepath.Join(dir, "roto.txt")))

	docs, err := NewReader(dir, testLogger()).Documents(context.Background())
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "bueno.txt", docs[0].Name)
	assert.NoError(t, docs[0].ReadErr)
	assert.Equal(t, "texto legible", docs[0].Text)
	assert.Equal(t, "roto.txt", docs[1].Name)
	assert.Error(t, docs[1].ReadErr)
	assert.Empty(t, docs[1].Text)
}

func TestDocumentsEmptyDirectory(t *testing.T) {
	docs, err := NewReader(t.TempDir(), testLogger()).Documents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentsMissingDirectory(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "no-existe"), testLogger()).Documents(context.Background())
	assert.Error(t, err)
}

func TestDocumentsContextCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "uno.txt", "texto")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReader(dir, testLogger()).Documents(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
