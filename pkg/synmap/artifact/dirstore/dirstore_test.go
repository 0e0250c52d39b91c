package dirstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/synmap/pkg/synmap/internalerr"
)

func TestWriteReadExists(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "model")
	st := New(dir)

	ok, err := st.Exists(ctx, "syn.json")
	if err != nil || ok {
		t.Fatalf("Exists before write = %v, %v", ok, err)
	}

	if err := st.Write(ctx, "syn.json", []byte(`{"nyc": "New York"}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	ok, err = st.Exists(ctx, "syn.json")
	if err != nil || !ok {
		t.Fatalf("Exists after write = %v, %v", ok, err)
	}

	got, err := st.Read(ctx, "syn.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != `{"nyc": "New York"}` {
		t.Errorf("Read = %s", got)
	}

	// Overwrite leaves no temp files behind.
	if err := st.Write(ctx, "syn.json", []byte(`{}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 file in model dir, got %d", len(entries))
	}
}

func TestReadMissing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Read(context.Background(), "missing.json")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Read error = %v, want ErrNotFound", err)
	}
}

func TestExistsDirectoryIsNotDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}
	ok, err := New(dir).Exists(context.Background(), "sub.json")
	if err != nil || ok {
		t.Errorf("Exists(directory) = %v, %v; want false", ok, err)
	}
}

func TestRejectsEscapingNames(t *testing.T) {
	st := New(t.TempDir())
	err := st.Write(context.Background(), "../escape.json", []byte("x"))
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Write error = %v, want ErrInvalidInput", err)
	}
}
