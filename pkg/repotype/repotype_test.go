package repotype

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/goinject/pkg/targetfs"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		want    RepoType
	}{
		{"nothing", Signals{}, Unknown},
		{"marketing site", Signals{FrameworkConfig: "next.config.js", FrameworkDependency: true}, FrameworkMarketingSite},
		{"framework app", Signals{FrameworkConfig: "next.config.mjs", FrameworkDependency: true, HasOverlayDir: true}, FrameworkApp},
		{"overlay only", Signals{HasOverlayDir: true}, GovernanceFramework},
		{"config without dependency", Signals{FrameworkConfig: "next.config.js"}, Unknown},
		{"config without dependency but overlay", Signals{FrameworkConfig: "next.config.js", HasOverlayDir: true}, GovernanceFramework},
		{"dependency without config", Signals{FrameworkDependency: true}, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.signals))
		})
	}
}

func newTarget(t *testing.T, files map[string]string, dirs ...string) targetfs.FS {
	t.Helper()
	bfs := memfs.New()
	for _, d := range dirs {
		require.NoError(t, bfs.MkdirAll(d, 0o755))
	}
	for name, content := range files {
		require.NoError(t, util.WriteFile(bfs, name, []byte(content), 0o644))
	}
	return targetfs.NewBilly(bfs)
}

func TestDetect(t *testing.T) {
	pkgWithNext := `{"name": "site", "dependencies": {"next": "14.2.0", "react": "18"}}`
	pkgDevOnly := `{"name": "site", "devDependencies": {"next": "14.2.0"}}`

	tests := []struct {
		name  string
		files map[string]string
		dirs  []string
		want  RepoType
	}{
		{"empty target", nil, nil, Unknown},
		{"marketing site", map[string]string{"next.config.mjs": "export default {}", "package.json": pkgWithNext}, nil, FrameworkMarketingSite},
		{"framework app", map[string]string{"next.config.js": "module.exports = {}", "package.json": pkgWithNext}, []string{".repo"}, FrameworkApp},
		{"governance overlay", nil, []string{".repo/policy"}, GovernanceFramework},
		{"dev dependency only", map[string]string{"next.config.js": "", "package.json": pkgDevOnly}, nil, Unknown},
		{"broken package.json falls through", map[string]string{"next.config.js": "", "package.json": "{not json"}, []string{".repo"}, GovernanceFramework},
		{"missing package.json", map[string]string{"next.config.ts": ""}, nil, Unknown},
		{"overlay name taken by a file", map[string]string{".repo": "not a directory"}, nil, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newTarget(t, tt.files, tt.dirs...)
			got, _ := Detect(fsys, "")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInspectSignals(t *testing.T) {
	fsys := newTarget(t, map[string]string{
		"next.config.js": "",
		"package.json":   `{"dependencies": {"next": "15"}}`,
	}, ".repo")

	s := Inspect(fsys, "")
	assert.Equal(t, "next.config.js", s.FrameworkConfig)
	assert.True(t, s.FrameworkDependency)
	assert.True(t, s.HasOverlayDir)
}

func TestDetect_CustomOverlay(t *testing.T) {
	fsys := newTarget(t, nil, ".governance/policy")

	rt, s := Detect(fsys, "/.governance/")
	assert.Equal(t, GovernanceFramework, rt)
	assert.True(t, s.HasOverlayDir)

	rt, _ = Detect(fsys, "")
	assert.Equal(t, Unknown, rt, "the default overlay is not present")
}

func TestResolveOverlay(t *testing.T) {
	assert.Equal(t, OverlayDir, ResolveOverlay(""))
	assert.Equal(t, OverlayDir, ResolveOverlay(" / "))
	assert.Equal(t, ".governance", ResolveOverlay("/.governance/"))
}

func TestParse(t *testing.T) {
	rt, err := Parse("Framework_App")
	require.NoError(t, err)
	assert.Equal(t, FrameworkApp, rt)

	_, err = Parse("rails")
	assert.Error(t, err)
}
