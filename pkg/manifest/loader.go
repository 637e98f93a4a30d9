package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fulmenhq/goinject/pkg/logger"
)

// DefaultMappingFile is the mapping document looked up when none is given
const DefaultMappingFile = "AGENTIC_SYSTEM_COMPLETE_FILE_MAPPING_WITH_CONTENT.json"

// Load reads and parses the mapping document at path. The format follows the
// file extension.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	m, err := Parse(data, DetectFormat(path))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	m.Source = path
	logger.Debug("Loaded mapping file",
		logger.String("path", path),
		logger.Int("categories", len(m.Categories)),
		logger.Int("files", m.FileCount()))
	return m, nil
}

// Parse decodes a mapping document. Only the overall shape is checked: a
// category or file entry with an unexpected shape contributes zero files.
func Parse(data []byte, format Format) (*Manifest, error) {
	tree, err := decodeOrdered(data, format)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	root, ok := tree.(*object)
	if !ok {
		return nil, &LoadError{Err: fmt.Errorf("mapping root must be an object")}
	}

	m := &Manifest{}
	if v, ok := root.get("version"); ok {
		if s, ok := v.(string); ok {
			m.Version = s
		}
	}

	rawCats, ok := root.get("categories")
	if !ok {
		return m, nil
	}
	cats, ok := rawCats.(*object)
	if !ok {
		logger.Warn("Mapping 'categories' is not an object; treating as empty")
		return m, nil
	}

	for _, name := range cats.keys {
		m.Categories = append(m.Categories, Category{
			Name:  name,
			Files: parseFiles(name, cats.values[name]),
		})
	}
	return m, nil
}

func parseFiles(category string, raw interface{}) []FileRecord {
	entry, ok := raw.(*object)
	if !ok {
		logger.Debug("Malformed category; no files", logger.String("category", category))
		return nil
	}
	rawFiles, _ := entry.get("files")
	list, ok := rawFiles.([]interface{})
	if !ok {
		return nil
	}

	files := make([]FileRecord, 0, len(list))
	for i, item := range list {
		rec, ok := parseRecord(item)
		if !ok {
			logger.Debug("Skipping malformed file entry",
				logger.String("category", category),
				logger.Int("index", i))
			continue
		}
		files = append(files, rec)
	}
	return files
}

func parseRecord(item interface{}) (FileRecord, bool) {
	obj, ok := item.(*object)
	if !ok {
		return FileRecord{}, false
	}
	rawPath, _ := obj.get("path")
	p, ok := rawPath.(string)
	if !ok || p == "" {
		return FileRecord{}, false
	}

	rec := FileRecord{Path: p}
	if rawContent, present := obj.get("content"); present {
		if s, ok := rawContent.(string); ok {
			content := s
			rec.Content = &content
		}
	}

	for _, k := range obj.keys {
		if k == "path" || k == "content" {
			continue
		}
		if rec.Metadata == nil {
			rec.Metadata = make(map[string]interface{})
		}
		rec.Metadata[k] = plain(obj.values[k])
	}
	return rec, true
}
