package manifest

// Manifest is the in-memory catalogue loaded from a file mapping document.
// Categories keep their declaration order.
type Manifest struct {
	Source     string
	Version    string
	Categories []Category
}

// Category is a named, ordered group of file records
type Category struct {
	Name  string
	Files []FileRecord
}

// FileRecord describes one file to inject. A nil Content marks a directory
// placeholder or an intentionally missing file; such records are never written.
type FileRecord struct {
	Path     string
	Content  *string
	Metadata map[string]interface{}
}

// HasContent reports whether the record carries content to write
func (r FileRecord) HasContent() bool {
	return r.Content != nil
}

// ContentString returns the record content, or "" when absent
func (r FileRecord) ContentString() string {
	if r.Content == nil {
		return ""
	}
	return *r.Content
}

// Category looks up a category by name
func (m *Manifest) Category(name string) (*Category, bool) {
	for i := range m.Categories {
		if m.Categories[i].Name == name {
			return &m.Categories[i], true
		}
	}
	return nil, false
}

// CategoryNames returns category names in declaration order
func (m *Manifest) CategoryNames() []string {
	names := make([]string, 0, len(m.Categories))
	for _, c := range m.Categories {
		names = append(names, c.Name)
	}
	return names
}

// FileCount returns the number of records across all categories, including
// records without content
func (m *Manifest) FileCount() int {
	n := 0
	for _, c := range m.Categories {
		n += len(c.Files)
	}
	return n
}
