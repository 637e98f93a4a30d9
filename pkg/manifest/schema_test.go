package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	doc := `{"categories": {"policy_governance": {"files": [{"path": "AGENTS.md", "content": "X"}, {"path": "dir", "content": null}]}}}`
	res, err := Validate([]byte(doc), FormatJSON)
	require.NoError(t, err)
	assert.True(t, res.Valid, "errors: %v", res.Errors)
	assert.Empty(t, res.Errors)
}

func TestValidate_ReportsMalformedEntries(t *testing.T) {
	doc := `{"categories": {"a": {"files": [{"content": "no path"}, {"path": "x", "content": 5}]}, "b": "oops"}}`
	res, err := Validate([]byte(doc), FormatJSON)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.GreaterOrEqual(t, len(res.Errors), 3)
}

func TestValidate_MissingCategories(t *testing.T) {
	res, err := Validate([]byte("version: '1'\n"), FormatYAML)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, "root", res.Errors[0].Path)
}

func TestValidate_ParseFailure(t *testing.T) {
	_, err := Validate([]byte("{"), FormatJSON)
	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "m.yaml", "categories:\n  a:\n    files:\n      - path: a.md\n        content: hi\n")
	res, err := ValidateFile(p)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, p, res.Source)
}
