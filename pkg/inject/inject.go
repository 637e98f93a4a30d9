// Package inject runs the injection pipeline: load, classify, plan, then
// write each planned file into the target.
package inject

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fulmenhq/goinject/pkg/adapt"
	"github.com/fulmenhq/goinject/pkg/filter"
	"github.com/fulmenhq/goinject/pkg/ignore"
	"github.com/fulmenhq/goinject/pkg/logger"
	"github.com/fulmenhq/goinject/pkg/manifest"
	"github.com/fulmenhq/goinject/pkg/plan"
	"github.com/fulmenhq/goinject/pkg/repotype"
	"github.com/fulmenhq/goinject/pkg/safeio"
	"github.com/fulmenhq/goinject/pkg/targetfs"
)

// ErrTargetMissing is returned when the target root is not an existing directory
var ErrTargetMissing = errors.New("target directory does not exist")

const (
	dirPerm        os.FileMode = 0o755
	filePerm       os.FileMode = 0o644
	executablePerm os.FileMode = 0o755
)

// Run executes the pipeline. The returned error is non-nil only for fatal
// conditions; per-file failures are recorded as outcomes.
func Run(opts Options) (*RunResult, error) {
	started := time.Now()

	m := opts.Manifest
	if m == nil {
		loaded, err := manifest.Load(opts.MappingFile)
		if err != nil {
			return nil, err
		}
		m = loaded
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = targetfs.NewOS(opts.TargetRoot)
		if !targetfs.IsDir(fsys, ".") {
			return nil, fmt.Errorf("%w: %s", ErrTargetMissing, opts.TargetRoot)
		}
	}

	if err := filter.ValidateExcludes(opts.Exclude); err != nil {
		return nil, err
	}

	mode := opts.FilterMode
	if mode == "" {
		mode = filter.ModeAuto
	}

	rt, signals := repotype.Detect(fsys, opts.OverlayDir)

	var table adapt.Table
	if opts.AdaptPaths {
		table = adapt.BuildSubstitutions(rt, opts.Substitutions, opts.OverlayDir)
	}

	files := plan.Build(m)

	result := &RunResult{
		RunID:          uuid.NewString(),
		StartedAt:      started,
		TargetRoot:     opts.TargetRoot,
		MappingFile:    opts.MappingFile,
		DryRun:         opts.DryRun,
		RepoType:       rt,
		Signals:        signals,
		FilterMode:     mode,
		AdaptPaths:     opts.AdaptPaths,
		SkipOverlayDir: opts.SkipOverlayDir,
		Planned:        len(files),
		Outcomes:       make([]Outcome, 0, len(files)),
	}

	logger.Info("Starting injection",
		logger.String("run_id", result.RunID),
		logger.String("target", opts.TargetRoot),
		logger.String("repo_type", rt.String()),
		logger.String("filter_mode", string(mode)),
		logger.Int("planned", len(files)),
		logger.Bool("dry_run", opts.DryRun))

	in := &injector{
		fsys:  fsys,
		table: table,
		adapt: opts.AdaptPaths,
		dry:   opts.DryRun,
		filter: filter.Filter{
			Mode:           mode,
			RepoType:       rt,
			SkipOverlayDir: opts.SkipOverlayDir,
			AdaptPaths:     opts.AdaptPaths,
			OverlayDir:     opts.OverlayDir,
			Exclude:        opts.Exclude,
			Ignore:         ignore.NewMatcher(fsys),
		},
		result:   result,
		observer: opts.Observer,
	}
	for _, pf := range files {
		in.inject(pf)
	}

	result.Duration = time.Since(started)
	c := result.Counts()
	logger.Info("Injection finished",
		logger.String("run_id", result.RunID),
		logger.Int("created", c.Created),
		logger.Int("skipped", c.Skipped),
		logger.Int("errors", c.Errors),
		logger.Int("warnings", c.Warnings))
	return result, nil
}

type injector struct {
	fsys     targetfs.FS
	table    adapt.Table
	adapt    bool
	dry      bool
	filter   filter.Filter
	result   *RunResult
	observer func(Outcome)
}

func (in *injector) record(o Outcome) {
	in.result.Outcomes = append(in.result.Outcomes, o)
	if in.observer != nil {
		in.observer(o)
	}
}

func (in *injector) inject(pf plan.PlannedFile) {
	adapted := adapt.AdaptPath(pf.Path, in.table)
	base := Outcome{Path: adapted, Category: pf.Category}
	if adapted != pf.Path {
		base.AdaptedFrom = pf.Path
		logger.Debug("Adapted path", logger.String("from", pf.Path), logger.String("to", adapted))
	}

	rel, err := safeio.CleanRelative(adapted)
	if err != nil {
		in.fail(base, fmt.Sprintf("invalid path: %v", err))
		return
	}
	base.Path = rel

	if ok, reason := in.filter.Applicable(pf.Path, pf.Category); !ok {
		if reason == "" {
			reason = ReasonNotApplicable
		}
		in.skip(base, reason)
		return
	}

	content := []byte(adapt.AdaptContent(pf.Content(), in.table, in.adapt))

	existed := targetfs.Exists(in.fsys, rel)
	if existed && targetfs.IsRegular(in.fsys, rel) {
		if current, readErr := in.fsys.ReadFile(rel); readErr == nil && bytes.Equal(current, content) {
			in.skip(base, ReasonIdentical)
			return
		}
	}

	if in.dry {
		if msg := in.wouldFail(rel); msg != "" {
			in.fail(base, msg)
			return
		}
	} else {
		if dir := path.Dir(rel); dir != "." {
			if err := in.fsys.MkdirAll(dir, dirPerm); err != nil {
				in.fail(base, fmt.Sprintf("failed to create directory %s: %v", dir, err))
				return
			}
		}
		if err := in.fsys.WriteFile(rel, content, filePerm); err != nil {
			in.fail(base, fmt.Sprintf("failed to write file: %v", err))
			return
		}
	}

	created := base
	created.Kind = KindCreated
	created.Updated = existed
	in.record(created)
	logger.Debug("Injected file",
		logger.String("path", rel),
		logger.String("category", pf.Category),
		logger.Bool("updated", existed))

	if !needsExecutable(rel) || in.dry {
		return
	}
	if err := in.fsys.Chmod(rel, executablePerm); err != nil && !errors.Is(err, targetfs.ErrChmodUnsupported) {
		in.record(Outcome{
			Kind:     KindWarning,
			Path:     rel,
			Category: pf.Category,
			Message:  fmt.Sprintf("could not make %s executable: %v", rel, err),
		})
	}
}

// wouldFail returns the error a real write of rel would record, or "" when
// the target's shape allows it
func (in *injector) wouldFail(rel string) string {
	if dir := path.Dir(rel); dir != "." {
		parts := strings.Split(dir, "/")
		for i := range parts {
			ancestor := strings.Join(parts[:i+1], "/")
			info, err := in.fsys.Stat(ancestor)
			if err != nil {
				break
			}
			if !info.IsDir() {
				return fmt.Sprintf("failed to create directory %s: %s is not a directory", dir, ancestor)
			}
		}
	}
	if targetfs.IsDir(in.fsys, rel) {
		return fmt.Sprintf("failed to write file: %s is a directory", rel)
	}
	return ""
}

func (in *injector) skip(base Outcome, reason string) {
	base.Kind = KindSkipped
	base.Reason = reason
	in.record(base)
	logger.Debug("Skipped file", logger.String("path", base.Path), logger.String("reason", reason))
}

func (in *injector) fail(base Outcome, msg string) {
	base.Kind = KindError
	base.Message = msg
	in.record(base)
	logger.Warn("File injection failed", logger.String("path", base.Path), logger.String("error", msg))
}

// needsExecutable reports whether rel is a script under a scripts directory.
// Platforms without an executable bit never qualify.
func needsExecutable(rel string) bool {
	if runtime.GOOS == "windows" {
		return false
	}
	ext := path.Ext(rel)
	if ext != ".sh" && ext != ".py" {
		return false
	}
	for _, seg := range strings.Split(path.Dir(rel), "/") {
		if seg == "scripts" {
			return true
		}
	}
	return false
}
