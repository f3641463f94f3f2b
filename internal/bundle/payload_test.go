package bundle

import "testing"

func TestAssemble(t *testing.T) {
	got := Assemble([]string{"a.txt", "src/b.go"}, []string{"hello", "package b\n"})
	want := "# Project Context\n\n## File Structure\n```\na.txt\nsrc/b.go\n```\n" +
		"\n\n# File: a.txt\n```\nhello\n```" +
		"\n\n# File: src/b.go\n```\npackage b\n\n```"
	if got != want {
		t.Errorf("Assemble mismatch\ngot:  %q\nwant: %q", got, want)
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		chars int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 1}, // half rounds away from zero
		{5, 1},
		{6, 2},
		{4000, 1000},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.chars); got != tt.want {
			t.Errorf("EstimateTokens(%d) = %d, want %d", tt.chars, got, tt.want)
		}
	}
}

func TestLengthCountsCharacters(t *testing.T) {
	if got := Length("héllo"); got != 5 {
		t.Errorf("Length = %d, want 5", got)
	}
}

func TestSizeKB(t *testing.T) {
	if got := SizeKB(600000); got != 586 {
		t.Errorf("SizeKB(600000) = %d, want 586", got)
	}
}
