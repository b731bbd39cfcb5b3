package fs

import (
	"fmt"
	iofs "io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Directory is an imported local directory. It enumerates files into flat
// entries and re-stats individual entries for change notifications.
type Directory struct {
	root     string
	prefix   string
	excluded func(name string) bool
}

// Open validates root and returns a Directory rooted there. excluded, if
// non-nil, filters entries by base name during scans.
func Open(root string, excluded func(string) bool) (*Directory, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}
	return &Directory{
		root:     abs,
		prefix:   filepath.Base(abs),
		excluded: excluded,
	}, nil
}

// Root returns the absolute path of the imported directory.
func (d *Directory) Root() string {
	return d.root
}

// Name returns the single top-level segment shared by all entry paths.
func (d *Directory) Name() string {
	return d.prefix
}

// Scan walks the directory and returns its files as flat entries in
// lexical walk order. Directories are not emitted; the tree builder
// derives them from path segments.
func (d *Directory) Scan() ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(d.root, func(path string, de iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == d.root {
			return nil
		}
		if d.excluded != nil && d.excluded(de.Name()) {
			if de.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if de.IsDir() {
			return nil
		}
		info, err := de.Info()
		if err != nil {
			// Entry vanished mid-walk
			return nil
		}
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return nil
		}
		entries = append(entries, Entry{
			Path:   d.prefix + "/" + filepath.ToSlash(rel),
			Handle: newHandle(info),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Stat re-stats a single entry by its prefixed relative path.
func (d *Directory) Stat(path string) (Entry, error) {
	inner, ok := strings.CutPrefix(path, d.prefix+"/")
	if !ok || inner == "" {
		return Entry{}, os.ErrNotExist
	}
	info, err := os.Stat(filepath.Join(d.root, filepath.FromSlash(inner)))
	if err != nil {
		return Entry{}, err
	}
	if info.IsDir() {
		return Entry{}, os.ErrNotExist
	}
	return Entry{Path: path, Handle: newHandle(info)}, nil
}

// EntryPath converts an absolute on-disk path to a prefixed relative entry
// path. ok is false for paths outside the directory.
func (d *Directory) EntryPath(abs string) (path string, ok bool) {
	rel, err := filepath.Rel(d.root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return d.prefix + "/" + filepath.ToSlash(rel), true
}

type fileHandle struct {
	name    string
	size    int64
	modTime time.Time
	ctype   string
}

func newHandle(info os.FileInfo) *fileHandle {
	return &fileHandle{
		name:    info.Name(),
		size:    info.Size(),
		modTime: info.ModTime(),
		ctype:   contentType(info.Name()),
	}
}

func (h *fileHandle) Name() string        { return h.name }
func (h *fileHandle) Size() int64         { return h.size }
func (h *fileHandle) ContentType() string { return h.ctype }
func (h *fileHandle) ModTime() time.Time  { return h.modTime }

// contentType derives a bare MIME type from the file extension. The type
// comes from the name alone; file content is never read.
func contentType(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	t := mime.TypeByExtension(ext)
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}
