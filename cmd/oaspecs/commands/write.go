package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocutover/open-api-specs/compiler"
	"github.com/gocutover/open-api-specs/internal/fileutil"
	"github.com/gocutover/open-api-specs/internal/pathutil"
)

// WriteDocuments writes each result's document to dir as
// "<version>.<format>" and returns the written paths in result order. The
// directory is created when missing.
func WriteDocuments(dir, format string, results []*compiler.Result) ([]string, error) {
	if err := ValidateOutputFormat(format, false); err != nil {
		return nil, err
	}
	abs, err := pathutil.SanitizeOutputDir(dir)
	if err != nil {
		return nil, err
	}
	written := make([]string, 0, len(results))
	for _, r := range results {
		data, err := Marshal(r.Document, format)
		if err != nil {
			return written, fmt.Errorf("encoding %s: %w", r.Scope, err)
		}
		path, err := pathutil.SanitizeOutputPath(filepath.Join(abs, r.Scope+"."+format))
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, data, fileutil.DocumentMode); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
