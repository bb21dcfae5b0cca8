package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mireval/chartbot/internal"
)

// SaveArtifact is the "trigger a file save" primitive: it renders the
// chart in the given format and writes exactly one artifact to
// <dir>/<filename>.<ext>, returning the written path.
func SaveArtifact(dir, format string, chart *internal.ChartDescriptor, opts Options) (string, error) {
	exporter, err := NewExporter(format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &internal.ExportError{Format: format, Path: dir, Err: err}
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s", opts.Filename, exporter.Extension()))
	file, err := os.Create(path)
	if err != nil {
		return "", &internal.ExportError{Format: format, Path: path, Err: err}
	}

	if err := exporter.Export(chart, opts, file); err != nil {
		_ = file.Close()
		return "", &internal.ExportError{Format: format, Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return "", &internal.ExportError{Format: format, Path: path, Err: err}
	}
	return path, nil
}
