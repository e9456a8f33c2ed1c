package organize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mjanssen/docflow/internal/model"
)

// MetadataSuffix is appended to a moved file's base name to form its sidecar.
const MetadataSuffix = ".metadata.json"

// MetadataWriter emits a JSON sidecar describing how a file was processed.
type MetadataWriter struct{}

// NewMetadataWriter creates a metadata writer.
func NewMetadataWriter() *MetadataWriter {
	return &MetadataWriter{}
}

// WriteRecord serializes the record to a sidecar beside the moved file.
// movedPath is the file's final location; the sidecar replaces its extension
// with the metadata suffix.
func (w *MetadataWriter) WriteRecord(movedPath string, record model.ProcessingRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	sidecar := SidecarPath(movedPath)
	if err := os.WriteFile(sidecar, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata sidecar: %w", err)
	}
	return nil
}

// SidecarPath returns the metadata sidecar path for a moved file.
func SidecarPath(movedPath string) string {
	ext := filepath.Ext(movedPath)
	return strings.TrimSuffix(movedPath, ext) + MetadataSuffix
}

// IsSidecar reports whether a filename is a metadata sidecar.
func IsSidecar(name string) bool {
	return strings.HasSuffix(name, MetadataSuffix)
}
