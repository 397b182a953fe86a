package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathValidator keeps input files inside the folder they were discovered in
type PathValidator struct {
	root     string
	realRoot string
}

// NewPathValidator creates a validator rooted at an existing directory
func NewPathValidator(root string) (*PathValidator, error) {
	if root == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	return &PathValidator{
		root:     filepath.Clean(absRoot),
		realRoot: filepath.Clean(realRoot),
	}, nil
}

// ValidatePath fails when path, after following symlinks, lies outside the
// configured directory
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	within, err := v.IsPathWithinDirectory(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}
	return nil
}

// IsPathWithinDirectory reports whether both the lexical and the resolved
// form of path are inside the configured directory
func (v *PathValidator) IsPathWithinDirectory(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	lexicalOK := within(absPath, v.root) || within(absPath, v.realRoot)
	return lexicalOK && within(realPath, v.realRoot), nil
}

// GetConfiguredDirectory returns the configured directory path
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.root
}

func within(path, dir string) bool {
	if path == dir {
		return true
	}
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}
