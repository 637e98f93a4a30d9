package manifest

import "fmt"

// LoadError reports a manifest that could not be read or parsed
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load mapping: %v", e.Err)
	}
	return fmt.Sprintf("failed to load mapping file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
