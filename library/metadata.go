// ABOUTME: Reads track metadata directly from audio file tags for display
// ABOUTME: Caches per-file results and prefetches the whole library in parallel

package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhowden/tag"

	"mediatui/pool"
)

// TrackInfo holds the display metadata for one media file. Fields may be
// empty when the file carries no readable tags.
type TrackInfo struct {
	Name   string // File name, always set
	Artist string
	Title  string
	Album  string
}

// Display returns "Artist - Title" when tags are present, the bare file
// name otherwise
func (t TrackInfo) Display() string {
	if t.Artist != "" && t.Title != "" {
		return fmt.Sprintf("%s - %s", t.Artist, t.Title)
	}

	if t.Title != "" {
		return t.Title
	}

	return t.Name
}

// ReadTrackInfo reads tags from a single media file. A file without
// readable tags is not an error at the library level; callers get a
// TrackInfo carrying just the file name.
func ReadTrackInfo(path, name string) (TrackInfo, error) {
	info := TrackInfo{Name: name}

	f, err := os.Open(path)
	if err != nil {
		return info, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	metadata, err := tag.ReadFrom(f)
	if err != nil {
		return info, fmt.Errorf("failed to read metadata: %w", err)
	}

	info.Artist = metadata.Artist()
	info.Album = metadata.Album()
	info.Title = metadata.Title()

	return info, nil
}

// Info returns cached metadata for name, falling back to a TrackInfo with
// just the file name when nothing has been read yet
func (l *Library) Info(name string) TrackInfo {
	l.mu.RLock()
	info, ok := l.meta[name]
	l.mu.RUnlock()

	if ok {
		return info
	}

	return TrackInfo{Name: name}
}

// PrefetchMetadata reads tags for every file in the library concurrently
// and fills the metadata cache. Read failures are ignored; those files keep
// their bare-filename fallback.
func (l *Library) PrefetchMetadata() {
	files := l.Files()
	infos := make([]TrackInfo, len(files))

	pool.ForEach(len(files), func(i int) {
		// Errors intentionally dropped; Display() degrades to the file name
		info, _ := ReadTrackInfo(filepath.Join(l.dir, files[i]), files[i])
		infos[i] = info
	})

	l.mu.Lock()
	for i, name := range files {
		l.meta[name] = infos[i]
	}
	l.mu.Unlock()
}
