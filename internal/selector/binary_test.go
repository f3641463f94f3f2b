package selector

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name   string
		sample []byte
		want   bool
	}{
		{"empty", nil, false},
		{"ascii", []byte("package main\n\nfunc main() {}\n"), false},
		{"tabs and newlines", []byte("a\tb\r\nc\f"), false},
		{"utf8 text", []byte("héllo wörld — ünïcödé ✓\n"), false},
		{"cjk text", []byte("こんにちは世界\n"), false},
		{"nul byte", []byte("abc\x00def"), true},
		{"png header", pngHeader, true},
		{"pdf magic", []byte("%PDF-1.4\nstuff"), true},
		{"utf8 bom", append([]byte{0xef, 0xbb, 0xbf}, "text"...), false},
		{"utf16 le bom", []byte{0xff, 0xfe, 'h', 0x00, 'i', 0x00}, false},
		{"utf16 be bom", []byte{0xfe, 0xff, 0x00, 'h', 0x00, 'i'}, false},
		{"control noise", bytes.Repeat([]byte{0x01, 0x02, 0x03, 'a'}, 20), true},
		{"few control bytes", append(bytes.Repeat([]byte("x"), 100), 0x1b, '[', '0', 'm'), false},
		{"invalid utf8 noise", bytes.Repeat([]byte{0xc3, 0x28, 'a', 'b'}, 20), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBinary(tt.sample); got != tt.want {
				t.Errorf("IsBinary(%q) = %v, want %v", tt.sample, got, tt.want)
			}
		})
	}
}

func TestIsBinary_TruncatedRuneAtWindowEdge(t *testing.T) {
	sample := append(bytes.Repeat([]byte("a"), sniffLen-1), 0xe2)
	if IsBinary(sample) {
		t.Error("a multi-byte rune cut by the sample window should not count as binary")
	}
}

func TestIsBinaryFile(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "text")
	if err := os.WriteFile(text, bytes.Repeat([]byte("line of text\n"), 200), 0o644); err != nil {
		t.Fatal(err)
	}
	bin := filepath.Join(dir, "bin")
	if err := os.WriteFile(bin, append([]byte("ok"), 0x00), 0o644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	for path, want := range map[string]bool{text: false, bin: true, empty: false} {
		got, err := IsBinaryFile(path)
		if err != nil {
			t.Fatalf("IsBinaryFile(%s) error: %v", path, err)
		}
		if got != want {
			t.Errorf("IsBinaryFile(%s) = %v, want %v", filepath.Base(path), got, want)
		}
	}

	if _, err := IsBinaryFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
