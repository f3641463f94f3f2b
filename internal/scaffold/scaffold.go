package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is offered when the caller gives no project name.
const DefaultName = "my-project"

// Templates are the project types offered by the picker.
var Templates = []string{"Node.js", "Python", "Go"}

// ErrInvalidName is returned for names that are empty or would escape the
// target directory.
var ErrInvalidName = errors.New("invalid project name")

// Prompter asks for the values a Request is missing.
type Prompter interface {
	Input(question, def string) (string, error)
	Select(question string, choices []string) (string, error)
}

// Request describes the project to create.
type Request struct {
	Name string
	Type string
	// Dir is where the project file is written. Empty means the working
	// directory.
	Dir string
}

// Resolve fills in Name and Type by asking p. Fields already set are left
// alone and no question is asked for them.
func Resolve(req Request, p Prompter) (Request, error) {
	if req.Name == "" {
		name, err := p.Input("What is the project name?", DefaultName)
		if err != nil {
			return req, fmt.Errorf("project name: %w", err)
		}
		req.Name = name
	}
	if req.Type == "" {
		typ, err := p.Select("Pick a template:", Templates)
		if err != nil {
			return req, fmt.Errorf("project type: %w", err)
		}
		req.Type = typ
	}
	return req, nil
}

// Create writes <Dir>/<Name>.txt recording the project type and returns the
// path written. An existing file is replaced.
func Create(req Request) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, req.Name)
	}
	if req.Type == "" {
		return "", errors.New("project type is required")
	}

	path := filepath.Join(req.Dir, name+".txt")
	if err := os.WriteFile(path, []byte("Project Type: "+req.Type), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
