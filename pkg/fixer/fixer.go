package fixer

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/phpfix/internal/logging"
	"github.com/yaklabco/phpfix/pkg/config"
	"github.com/yaklabco/phpfix/pkg/fix"
	"github.com/yaklabco/phpfix/pkg/fsutil"
	"github.com/yaklabco/phpfix/pkg/langdetect"
	"github.com/yaklabco/phpfix/pkg/phpast"
)

// Options controls one fixer run.
type Options struct {
	// Jobs is the number of files processed in parallel.
	// Zero means one worker per CPU.
	Jobs int

	// DryRun computes diffs without writing anything.
	DryRun bool

	// Backup configures sidecar backups before each rewrite.
	Backup fsutil.BackupConfig
}

// Fixer orchestrates fix runs: it groups issues by file, computes edits via
// the registered handlers, merges them, and rewrites changed files.
//
// Files are independent units of work; no state is shared between them
// beyond the read-only registry and the content cache, so they may be
// processed in parallel. Within one file everything is pure until the single
// final write.
type Fixer struct {
	cfg      *config.Config
	registry *Registry
	cache    *ContentCache
	logger   *log.Logger
}

// New creates a Fixer. A nil registry uses DefaultRegistry; a nil logger
// uses the package default.
func New(cfg *config.Config, registry *Registry, logger *log.Logger) (*Fixer, error) {
	if registry == nil {
		registry = DefaultRegistry
	}
	if logger == nil {
		logger = logging.Default()
	}

	cache, err := NewContentCache(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("content cache: %w", err)
	}

	return &Fixer{
		cfg:      cfg,
		registry: registry,
		cache:    cache,
		logger:   logger,
	}, nil
}

// Run processes every file named by issues and returns per-file outcomes in
// first-seen issue order. No single file's failure aborts the run.
func (f *Fixer) Run(ctx context.Context, issues []Issue, opts Options) (*Result, error) {
	byFile, order := groupByFile(issues)

	result := &Result{Files: make([]FileOutcome, 0, len(order))}
	if len(order) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(order) {
		jobs = len(order)
	}

	f.logger.Debug("fix run starting",
		logging.FieldFiles, len(order),
		logging.FieldJobs, jobs,
		logging.FieldDryRun, opts.DryRun)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				select {
				case <-ctx.Done():
					return
				case outCh <- f.fixFile(ctx, path, byFile[path], opts):
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range order {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; re-sequence by the original grouping.
	outcomes := make(map[string]FileOutcome, len(order))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range order {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	f.logger.Debug("fix run complete",
		logging.FieldFilesFixed, result.Stats.FilesFixed,
		logging.FieldFilesConflicted, result.Stats.FilesConflicted,
		logging.FieldEditsApplied, result.Stats.EditsApplied)

	return result, nil
}

// groupByFile splits issues per file path, keeping first-seen path order so
// results stay deterministic regardless of worker scheduling.
func groupByFile(issues []Issue) (map[string][]Issue, []string) {
	byFile := make(map[string][]Issue)
	var order []string

	for _, issue := range issues {
		if _, seen := byFile[issue.Path]; !seen {
			order = append(order, issue.Path)
		}
		byFile[issue.Path] = append(byFile[issue.Path], issue)
	}

	return byFile, order
}

// fixFile runs the whole per-file pipeline: load, parse, compute edits,
// merge, write. Every failure is isolated to this file.
func (f *Fixer) fixFile(ctx context.Context, path string, issues []Issue, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path, IssueCount: len(issues)}
	abs := f.cfg.ProjectPath(path)

	entry, err := f.cache.GetOrRead(ctx, abs)
	if err != nil {
		f.logger.Warn("cannot read file, skipping",
			logging.FieldPath, path,
			logging.FieldError, err)
		outcome.State = StateLoadError
		outcome.Err = err
		outcome.Reason = "read failed"
		return outcome
	}

	if !langdetect.IsPHP(abs, entry.Content) {
		f.logger.Warn("not a PHP file, skipping", logging.FieldPath, path)
		outcome.State = StateSkipped
		outcome.Reason = "not a PHP file"
		return outcome
	}

	snap, err := phpast.NewParser().Parse(ctx, abs, entry.Content)
	if err != nil {
		// tree-sitter recovers from any source text; reaching this means
		// cancellation or an internal fault, not bad input.
		f.logger.Warn("parser failed, skipping",
			logging.FieldPath, path,
			logging.FieldError, err)
		outcome.State = StateLoadError
		outcome.Err = err
		outcome.Reason = "parse failed"
		return outcome
	}
	defer snap.Close()

	var edits []fix.TextEdit
	for _, issue := range issues {
		handler, ok := f.registry.Lookup(issue.Check)
		if !ok {
			continue
		}
		if issueEdits, ok := handler.Fix(snap, issue); ok {
			edits = append(edits, issueEdits...)
		}
	}

	if len(edits) == 0 {
		outcome.State = StateNoChange
		return outcome
	}

	prepared, err := fix.PrepareEdits(edits, len(entry.Content))
	if err != nil {
		f.logger.Warn("edits conflict, file left untouched",
			logging.FieldPath, path,
			logging.FieldError, err)
		outcome.State = StateConflict
		outcome.Reason = "conflicting edits"
		return outcome
	}

	newContent := fix.ApplyEdits(entry.Content, prepared)
	if bytes.Equal(newContent, entry.Content) {
		outcome.State = StateNoChange
		return outcome
	}

	outcome.State = StateApplied
	outcome.EditsApplied = len(prepared)

	if opts.DryRun {
		outcome.Diff = fix.GenerateDiff(path, entry.Content, newContent)
		return outcome
	}

	return f.write(ctx, abs, newContent, entry, opts, outcome)
}

// write performs the final on-disk step, guarding against the target having
// vanished or changed since it was read.
func (f *Fixer) write(ctx context.Context, abs string, newContent []byte, entry *CacheEntry, opts Options, outcome FileOutcome) FileOutcome {
	if !fsutil.Exists(abs) {
		f.logger.Warn("target vanished before write",
			logging.FieldPath, outcome.Path)
		outcome.State = StateSkipped
		outcome.Reason = "target vanished before write"
		outcome.EditsApplied = 0
		return outcome
	}

	modified, err := fsutil.CheckModified(ctx, entry.Info)
	if err != nil {
		f.logger.Warn("cannot verify file state, skipping write",
			logging.FieldPath, outcome.Path,
			logging.FieldError, err)
		outcome.State = StateSkipped
		outcome.Reason = "file state unverifiable"
		outcome.EditsApplied = 0
		return outcome
	}
	if modified {
		f.logger.Warn("file changed on disk since read, skipping write",
			logging.FieldPath, outcome.Path)
		outcome.State = StateSkipped
		outcome.Reason = "changed on disk"
		outcome.EditsApplied = 0
		return outcome
	}

	created, err := fsutil.CreateBackup(ctx, abs, opts.Backup)
	if err != nil {
		f.logger.Warn("backup failed, skipping write",
			logging.FieldPath, outcome.Path,
			logging.FieldError, err)
		outcome.State = StateSkipped
		outcome.Reason = "backup failed"
		outcome.EditsApplied = 0
		return outcome
	}
	outcome.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, abs, newContent, entry.Info.Mode); err != nil {
		f.logger.Warn("write failed",
			logging.FieldPath, outcome.Path,
			logging.FieldError, err)
		outcome.State = StateSkipped
		outcome.Reason = "write failed"
		outcome.EditsApplied = 0
		return outcome
	}

	f.cache.Invalidate(abs)
	outcome.Written = true
	return outcome
}
