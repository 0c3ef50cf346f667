package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/semdegroot/apotheek"
)

// DocumentFile pairs an extracted document with the file it was read from.
type DocumentFile struct {
	Path string
	Doc  *apotheek.Document
}

// ReadDocument reads a single extracted document from a JSON file.
func ReadDocument(path string) (*apotheek.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc apotheek.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apotheek.Errorf(apotheek.EINVALID, "parse %s: %v", filepath.Base(path), err)
	}
	return &doc, nil
}

// ReadDocuments reads all extracted documents in dir matching the glob
// pattern, sorted by file name. The default pattern is *_clean.json.
func ReadDocuments(dir, pattern string) ([]DocumentFile, error) {
	if pattern == "" {
		pattern = "*_clean.json"
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	files := make([]DocumentFile, 0, len(paths))
	for _, path := range paths {
		doc, err := ReadDocument(path)
		if err != nil {
			return nil, err
		}
		files = append(files, DocumentFile{Path: path, Doc: doc})
	}
	return files, nil
}
