package payslips

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"paycalc/internal/platform/crypto"
)

func TestArchiveSealsWhenKeyed(t *testing.T) {
	svc, err := crypto.New(strings.Repeat("01", 32))
	if err != nil {
		t.Fatalf("crypto: %v", err)
	}
	archive := NewArchive(t.TempDir(), svc)
	pdf := []byte("%PDF-1.3 test")

	path, err := archive.Save("E1", "PP2024-26", pdf)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "PP2024-26_E1.pdf.sealed" {
		t.Fatalf("unexpected path %s", path)
	}
	raw, _ := os.ReadFile(path)
	if bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatal("expected sealed content on disk")
	}

	loaded, err := archive.Load("E1", "PP2024-26")
	if err != nil || !bytes.Equal(loaded, pdf) {
		t.Fatalf("load mismatch: %q (%v)", loaded, err)
	}
}

func TestArchivePlainAndSanitised(t *testing.T) {
	svc, _ := crypto.New("")
	archive := NewArchive(t.TempDir(), svc)

	path, err := archive.Save("../E1", "PP 1", []byte("%PDF"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(path) != archive.Dir || filepath.Base(path) != "PP-1_..-E1.pdf" {
		t.Fatalf("unexpected path %s", path)
	}
}
