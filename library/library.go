// ABOUTME: Loads and holds the ordered list of playable files for a directory
// ABOUTME: Filters hidden files and unrecognized extensions, sorts alphabetically

// Package library maintains the browsable list of media files for one
// directory. It filters directory entries against the configured extension
// set, reads track tags (ID3, Vorbis, etc.) for display, and watches the
// directory for changes so the UI can reload the list.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Directory error taxonomy. Callers match with errors.Is.
var (
	ErrNotFound      = errors.New("directory does not exist")
	ErrNotADirectory = errors.New("path is not a directory")
	ErrPermission    = errors.New("permission denied accessing directory")
	ErrNoMediaFiles  = errors.New("no recognized media files")
)

// Library holds the sorted media file names for a directory. The file list
// is immutable between loads; Reload replaces it wholesale.
type Library struct {
	dir     string
	isMedia func(ext string) bool

	mu    sync.RWMutex
	files []string
	meta  map[string]TrackInfo
}

// Load scans dir and returns a Library holding the sorted list of playable
// file names. Fails with ErrNotFound, ErrNotADirectory, or ErrPermission
// when the directory cannot be listed, and ErrNoMediaFiles when the listing
// succeeds but nothing playable is found.
func Load(dir string, isMedia func(ext string) bool) (*Library, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}

	lib := &Library{
		dir:     abs,
		isMedia: isMedia,
		meta:    make(map[string]TrackInfo),
	}

	files, err := lib.scan()
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in directory: %s", ErrNoMediaFiles, abs)
	}

	lib.files = files

	return lib, nil
}

// Reload rescans the directory and replaces the file list. Unlike Load, an
// empty result is not an error: files may legitimately disappear while the
// UI is running.
func (l *Library) Reload() error {
	files, err := l.scan()
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.files = files
	l.mu.Unlock()

	return nil
}

// scan lists the directory and returns the sorted playable file names.
// Paths are resolved against l.dir explicitly; the process working
// directory is never changed.
func (l *Library) scan() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, classifyDirError(l.dir, err)
	}

	var files []string

	for _, entry := range entries {
		name := entry.Name()

		if strings.HasPrefix(name, ".") {
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		if !l.isMedia(strings.ToLower(filepath.Ext(name))) {
			continue
		}

		files = append(files, name)
	}

	sort.Strings(files)

	return files, nil
}

// classifyDirError maps a directory listing failure onto the error taxonomy
func classifyDirError(dir string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, dir)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermission, dir)
	}

	// ReadDir on a plain file reports ENOTDIR (or a generic error on some
	// platforms); confirm with a stat so the message names the real problem
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	return fmt.Errorf("failed to list directory %s: %w", dir, err)
}

// Dir returns the absolute directory this library was loaded from
func (l *Library) Dir() string {
	return l.dir
}

// Files returns a copy of the current file list
func (l *Library) Files() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, len(l.files))
	copy(out, l.files)

	return out
}

// Len returns the number of files in the library
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.files)
}

// Name returns the file name at index i, or "" when out of range
func (l *Library) Name(i int) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i < 0 || i >= len(l.files) {
		return ""
	}

	return l.files[i]
}

// Path returns the full path for the file at index i by joining the stored
// directory with the file name
func (l *Library) Path(i int) string {
	name := l.Name(i)
	if name == "" {
		return ""
	}

	return filepath.Join(l.dir, name)
}

// IndexOf returns the index of name in the current list, or -1
func (l *Library) IndexOf(name string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i, f := range l.files {
		if f == name {
			return i
		}
	}

	return -1
}
