package stats

import (
	"fmt"
	"io/ioutil"
	"path"
	"path/filepath"
	"strings"
)

// File represents a file containing population data, either on disk or
// behind a URL. This is typically a CSV export, sometimes an Excel sheet.
type File struct {
	Source  string
	Content []byte
}

// IsRemote reports whether the source must be downloaded.
func (f *File) IsRemote() bool {
	s := strings.ToLower(f.Source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Ext returns the lower-cased extension of the source, ignoring any URL query.
func (f *File) Ext() string {
	s := f.Source
	if f.IsRemote() {
		if i := strings.IndexAny(s, "?#"); i >= 0 {
			s = s[:i]
		}
		return strings.ToLower(path.Ext(s))
	}
	return strings.ToLower(filepath.Ext(s))
}

// ReadContent fills Content from disk or from the network.
func (f *File) ReadContent() error {
	if f.IsRemote() {
		data, err := download(f.Source)
		if err != nil {
			return err
		}
		f.Content = data
		return nil
	}

	data, err := ioutil.ReadFile(f.Source)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Source, err)
	}
	f.Content = data
	return nil
}
