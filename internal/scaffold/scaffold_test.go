package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type scriptedPrompter struct {
	input    string
	selected string
	asked    []string
}

func (s *scriptedPrompter) Input(question, def string) (string, error) {
	s.asked = append(s.asked, question)
	if s.input == "" {
		return def, nil
	}
	return s.input, nil
}

func (s *scriptedPrompter) Select(question string, choices []string) (string, error) {
	s.asked = append(s.asked, question)
	if s.selected == "" {
		return "", errors.New("no answer")
	}
	return s.selected, nil
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		prompter  *scriptedPrompter
		wantName  string
		wantType  string
		wantAsked int
	}{
		{
			name:      "both supplied",
			req:       Request{Name: "api", Type: "Go"},
			prompter:  &scriptedPrompter{},
			wantName:  "api",
			wantType:  "Go",
			wantAsked: 0,
		},
		{
			name:      "name defaults",
			req:       Request{Type: "Python"},
			prompter:  &scriptedPrompter{},
			wantName:  DefaultName,
			wantType:  "Python",
			wantAsked: 1,
		},
		{
			name:      "both asked",
			req:       Request{},
			prompter:  &scriptedPrompter{input: "web", selected: "Node.js"},
			wantName:  "web",
			wantType:  "Node.js",
			wantAsked: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.req, tt.prompter)
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if got.Name != tt.wantName || got.Type != tt.wantType {
				t.Errorf("got %+v, want name=%q type=%q", got, tt.wantName, tt.wantType)
			}
			if len(tt.prompter.asked) != tt.wantAsked {
				t.Errorf("asked %v, want %d questions", tt.prompter.asked, tt.wantAsked)
			}
		})
	}
}

func TestResolve_SelectError(t *testing.T) {
	_, err := Resolve(Request{Name: "x"}, &scriptedPrompter{})
	if err == nil {
		t.Fatal("expected error when no template is picked")
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	path, err := Create(Request{Name: "demo", Type: "Go", Dir: dir})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if path != filepath.Join(dir, "demo.txt") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Project Type: Go" {
		t.Errorf("content = %q", data)
	}
}

func TestCreate_InvalidName(t *testing.T) {
	for _, name := range []string{"", "  ", "..", "a/b", `a\b`} {
		_, err := Create(Request{Name: name, Type: "Go", Dir: t.TempDir()})
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Create(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}
