package pathutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocutover/open-api-specs/internal/fileutil"
)

// SanitizeOutputPath validates and cleans an output file path.
// It resolves ".." components via filepath.Clean + filepath.Abs and
// rejects paths that resolve to symlinks. New files in existing
// directories are accepted. Returns the cleaned absolute path.
func SanitizeOutputPath(path string) (string, error) {
	abs, err := absClean(path)
	if err != nil {
		return "", err
	}
	if err := rejectSymlink(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// SanitizeOutputDir cleans an output directory path, rejects symlinks, and
// creates the directory (and parents) when it does not exist yet. An
// existing non-directory at the path is an error.
func SanitizeOutputDir(dir string) (string, error) {
	abs, err := absClean(dir)
	if err != nil {
		return "", err
	}
	if err := rejectSymlink(abs); err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", fmt.Errorf("pathutil: output path is not a directory: %s", abs)
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(abs, fileutil.DirMode); err != nil {
			return "", fmt.Errorf("pathutil: creating output directory: %w", err)
		}
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}
	return abs, nil
}

func absClean(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}
	return abs, nil
}

func rejectSymlink(abs string) error {
	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
	case os.IsNotExist(err):
		// Not created yet.
	default:
		return fmt.Errorf("pathutil: cannot stat path: %w", err)
	}
	return nil
}
