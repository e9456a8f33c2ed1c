package organize

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolver guarantees non-colliding destination paths. Besides checking the
// filesystem it keeps an in-run reservation set, so two resolutions in the
// same run never hand out the same path even before the first move lands.
type Resolver struct {
	reserved map[string]bool
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{reserved: make(map[string]bool)}
}

// Resolve ensures dir exists and returns a unique path for base+ext inside
// it, appending _1, _2, ... while the candidate exists on disk or was
// already handed out this run.
func (r *Resolver) Resolve(dir, base, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create target directory: %w", err)
	}
	return r.Plan(dir, base, ext), nil
}

// Plan returns the unique path without creating the directory. Used by dry
// runs.
func (r *Resolver) Plan(dir, base, ext string) string {
	candidate := filepath.Join(dir, base+ext)
	for suffix := 1; r.taken(candidate); suffix++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, suffix, ext))
	}
	r.reserved[candidate] = true
	return candidate
}

func (r *Resolver) taken(path string) bool {
	if r.reserved[path] {
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}
