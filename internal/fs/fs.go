// Package fs provides the local directory access capability: opening a
// user-chosen directory and enumerating it into flat path/handle entries.
package fs

import (
	"os"
	"time"
)

// Handle exposes exactly the file attributes the explorer consumes.
type Handle interface {
	Name() string
	Size() int64
	// ContentType returns the extension-derived MIME type, or "" when unknown.
	ContentType() string
	ModTime() time.Time
}

// Entry pairs a slash-separated relative path with its file handle.
// Paths are prefixed with the imported directory's base name, so every
// entry from one Directory shares a single top-level segment.
type Entry struct {
	Path   string
	Handle Handle
}

// Supported reports whether local directory access is available to this
// process. When false the UI shows a fixed advisory and nothing else.
func Supported() bool {
	wd, err := os.Getwd()
	if err != nil {
		return false
	}
	_, err = os.Stat(wd)
	return err == nil
}
