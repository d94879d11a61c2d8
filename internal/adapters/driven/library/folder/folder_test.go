package folder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"guide.pdf", "guide.pdf"},
		{"My Guide v2.pdf", "My_Guide_v2.pdf"},
		{"../../etc/passwd", "etc_passwd"},
		{`C:\docs\notes.pdf`, "C_docs_notes.pdf"},
		{"résumé.pdf", "rsum.pdf"},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), tt.in)
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("a.pdf"))
	assert.True(t, IsPDF("A.PDF"))
	assert.False(t, IsPDF("a.txt"))
	assert.False(t, IsPDF("pdf"))
}

func TestNew(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	dir := filepath.Join(t.TempDir(), "library")
	lib, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, lib.Dir())
	assert.DirExists(t, dir)
}

func TestLibrary_SaveListReadDelete(t *testing.T) {
	dir := t.TempDir()
	lib, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0755))

	stored, err := lib.Save(ctx, "../Zeta Guide.pdf", []byte("%PDF-zeta"))
	require.NoError(t, err)
	assert.Equal(t, "Zeta_Guide.pdf", stored)

	_, err = lib.Save(ctx, "alpha.PDF", []byte("%PDF-alpha"))
	require.NoError(t, err)

	files, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Zeta_Guide.pdf", files[0].Name)
	assert.Equal(t, "alpha.PDF", files[1].Name)
	assert.Equal(t, int64(len("%PDF-zeta")), files[0].Size)
	assert.False(t, files[0].Modified.IsZero())

	data, err := lib.Read(ctx, "Zeta_Guide.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-zeta", string(data))

	require.NoError(t, lib.Delete(ctx, "alpha.PDF"))
	assert.ErrorIs(t, lib.Delete(ctx, "alpha.PDF"), domain.ErrNotFound)

	_, err = lib.Read(ctx, "missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibrary_InvalidNames(t *testing.T) {
	lib, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = lib.Save(ctx, "..", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = lib.Read(ctx, "/")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, lib.Delete(ctx, ""), domain.ErrInvalidInput)
}

func TestLibrary_ListMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lib")
	lib, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	files, err := lib.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}
