package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/goinject/pkg/ignore"
	"github.com/fulmenhq/goinject/pkg/repotype"
)

func TestParseMode(t *testing.T) {
	for _, in := range []string{"none", "auto", "Minimal", " full "} {
		_, err := ParseMode(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseMode("partial")
	assert.Error(t, err)
}

func TestApplicable(t *testing.T) {
	tests := []struct {
		name       string
		filter     Filter
		path       string
		wantOK     bool
		wantReason string
	}{
		{
			name:   "mode none bypasses every rule",
			filter: Filter{Mode: ModeNone, SkipOverlayDir: true, RepoType: repotype.FrameworkMarketingSite},
			path:   ".repo/policy.md",
			wantOK: true,
		},
		{
			name:       "overlay excluded",
			filter:     Filter{Mode: ModeAuto, SkipOverlayDir: true},
			path:       ".repo/policy.md",
			wantReason: ReasonOverlayExcluded,
		},
		{
			name:   "overlay kept when not skipping",
			filter: Filter{Mode: ModeAuto},
			path:   ".repo/policy.md",
			wantOK: true,
		},
		{
			name:   "overlay prefix is segment based",
			filter: Filter{Mode: ModeAuto, SkipOverlayDir: true},
			path:   ".repository/notes.md",
			wantOK: true,
		},
		{
			name:       "marketing site drops backend",
			filter:     Filter{Mode: ModeFull, RepoType: repotype.FrameworkMarketingSite, AdaptPaths: true},
			path:       "backend/AGENTS.md",
			wantReason: ReasonSplitDirs,
		},
		{
			name:       "marketing site drops frontend",
			filter:     Filter{Mode: ModeFull, RepoType: repotype.FrameworkMarketingSite},
			path:       "frontend/README.md",
			wantReason: ReasonSplitDirs,
		},
		{
			name:   "app keeps backend",
			filter: Filter{Mode: ModeFull, RepoType: repotype.FrameworkApp},
			path:   "backend/AGENTS.md",
			wantOK: true,
		},
		{
			name:       "exclude glob",
			filter:     Filter{Mode: ModeAuto, Exclude: []string{".github/**"}},
			path:       ".github/workflows/ci.yml",
			wantReason: ReasonExcluded,
		},
		{
			name:       "ignore file",
			filter:     Filter{Mode: ModeAuto, Ignore: ignore.FromPatterns([]string{"*.draft.md"})},
			path:       "docs/plan.draft.md",
			wantReason: ReasonIgnored,
		},
		{
			name:   "adaptation short-circuits minimal",
			filter: Filter{Mode: ModeMinimal, AdaptPaths: true},
			path:   "docs/guide.md",
			wantOK: true,
		},
		{
			name:       "minimal rejects non-essential",
			filter:     Filter{Mode: ModeMinimal},
			path:       "docs/guide.md",
			wantReason: ReasonNotEssential,
		},
		{
			name:   "minimal keeps nested essential",
			filter: Filter{Mode: ModeMinimal},
			path:   ".github/PR_TEMPLATE.md",
			wantOK: true,
		},
		{
			name:       "minimal matches base name exactly",
			filter:     Filter{Mode: ModeMinimal},
			path:       "docs/OLD_AGENTS.md",
			wantReason: ReasonNotEssential,
		},
		{
			name:       "minimal ignores essential names inside longer names",
			filter:     Filter{Mode: ModeMinimal},
			path:       "docs/AGENTS.md.tmpl",
			wantReason: ReasonNotEssential,
		},
		{
			name:   "full keeps everything else",
			filter: Filter{Mode: ModeFull},
			path:   "docs/guide.md",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := tt.filter.Applicable(tt.path, "context_files")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestApplicable_CustomOverlayDir(t *testing.T) {
	f := Filter{Mode: ModeAuto, SkipOverlayDir: true, OverlayDir: ".governance"}
	ok, _ := f.Applicable(".governance/x.md", "")
	assert.False(t, ok)
	ok, _ = f.Applicable(".repo/x.md", "")
	assert.True(t, ok)
}

func TestValidateExcludes(t *testing.T) {
	require.NoError(t, ValidateExcludes([]string{"**/*.md", "docs/*"}))
	assert.Error(t, ValidateExcludes([]string{"docs/[a"}))
}
