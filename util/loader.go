// Package util - Filesystem helpers for feeding images to a detector.
package util

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// ImageFile is one encoded image read from disk.
type ImageFile struct {
	// Path is the path the file was read from.
	Path string
	// Data is the raw encoded bytes.
	Data []byte
}

// imageExtensions are the file extensions treated as images.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

// LoadDirectoryImageFiles reads every image file in a directory,
// non-recursively, sorted by file name.
//
// Arguments:
//   - dir: Directory to scan.
//
// Returns:
//   - The image files found; empty when the directory holds none.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[filepath.Ext(entry.Name())] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		files = append(files, ImageFile{Path: path, Data: data})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}
