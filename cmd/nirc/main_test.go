package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/orizon-lang/nir/internal/cli"
	"github.com/orizon-lang/nir/internal/nir"
)

func TestReadHeader(t *testing.T) {
	sink := nir.NewBuffer()
	nir.Serialize(sink, nil)

	h, err := readHeader(sink.Bytes())
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}

	if h.Magic != nir.FormatMagic || h.Compat != nir.FormatCompat || h.Revision != nir.FormatRevision {
		t.Fatalf("readHeader = %+v, want magic/compat/revision to match nir.Format*", h)
	}
}

func TestReadHeader_TooShort(t *testing.T) {
	if _, err := readHeader([]byte{1, 2, 3}); err == nil {
		t.Fatalf("readHeader with 3 bytes: want error, got nil")
	}
}

func TestMergeConfig_FlagsOverrideFile(t *testing.T) {
	fileCfg := Config{InPath: "file-in.json", OutPath: "file-out.nir", Verbose: true}
	flagCfg := Config{InPath: "flag-in.json"}

	merged := mergeConfig(fileCfg, flagCfg)

	if merged.InPath != "flag-in.json" {
		t.Fatalf("InPath = %q, want flag to win", merged.InPath)
	}

	if merged.OutPath != "file-out.nir" {
		t.Fatalf("OutPath = %q, want file default preserved", merged.OutPath)
	}

	if !merged.Verbose {
		t.Fatalf("Verbose = false, want true (OR'd from file)")
	}
}

func TestLoadAndSerialize_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "defns.json")

	doc := `{"defns": [{"kind": "declare", "name": {"kind": "top", "top": "f"}, "type": {"kind": "function", "args": [], "ret": {"kind": "void"}}}]}`
	if err := os.WriteFile(inPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	data, err := loadAndSerialize(Config{InPath: inPath})
	if err != nil {
		t.Fatalf("loadAndSerialize: %v", err)
	}

	if len(data) == 0 {
		t.Fatalf("loadAndSerialize produced no bytes")
	}

	h, err := readHeader(data)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}

	if h.Magic != nir.FormatMagic {
		t.Fatalf("Magic = %x, want %x", h.Magic, nir.FormatMagic)
	}
}

func TestLoadAndSerialize_MmapSinkWritesFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "defns.json")
	outPath := filepath.Join(dir, "defns.nir")

	doc := `{"defns": []}`
	if err := os.WriteFile(inPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	_, err := loadAndSerialize(Config{InPath: inPath, OutPath: outPath, MmapSize: 64})
	if err != nil {
		t.Fatalf("loadAndSerialize with mmap sink: %v", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("stat %s: %v", outPath, err)
	}

	if info.Size() != 64 {
		t.Fatalf("mmap sink file size = %d, want 64", info.Size())
	}
}

func TestRunSerialize_WritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "defns.json")
	outPath := filepath.Join(dir, "defns.nir")

	doc := `{"defns": []}`
	if err := os.WriteFile(inPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	logger := cli.NewLogger(false, false)

	if err := runSerialize(Config{InPath: inPath, OutPath: outPath}, false, logger); err != nil {
		t.Fatalf("runSerialize: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if len(data) != 16 {
		t.Fatalf("output size = %d, want 16 (header 12 + defn count 4, no defns)", len(data))
	}
}
