// Package fileutil holds the permission modes used for compiled output.
package fileutil

import "os"

// DocumentMode is the mode for compiled documents. They are published
// artifacts, so every user may read them.
const DocumentMode os.FileMode = 0o644

// DirMode is the mode for output directories created on demand.
const DirMode os.FileMode = 0o755
