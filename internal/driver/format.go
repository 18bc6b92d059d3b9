package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"fortio.org/safecast"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"luaufmt/internal/config"
	"luaufmt/internal/diag"
	"luaufmt/internal/format"
	"luaufmt/internal/observ"
	"luaufmt/internal/source"
)

// StdinPath is the path argument that reads source from standard input.
const StdinPath = "-"

// ErrNoSourceFiles is returned when the given paths contain no Luau files.
var ErrNoSourceFiles = errors.New("format: no source files found")

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check          bool
	Stdout         bool
	MaxDiagnostics int
	// Jobs bounds the number of files formatted concurrently; 0 means one
	// per CPU.
	Jobs uint
	// Config overrides config discovery when non-nil.
	Config *config.Config
	Cache  *DiskCache
	Logger *log.Logger
	// Progress receives per-file events; nil disables reporting.
	Progress ProgressSink
	Timer    *observ.Timer
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte
	// Original is kept in check mode so callers can show a diff.
	Original []byte
	// Diagnostics holds parse errors when the file was skipped for them.
	Diagnostics *diag.Bag
	FileSet     *source.FileSet
}

// FormatPaths formats provided files or directories (recursively collecting
// .lua and .luau files). When opts.Check is true, files are not modified;
// Changed indicates whether formatting would update the file contents. When
// opts.Stdout is true, formatted content is returned in the results without
// touching files on disk. Results follow the sorted path order regardless of
// which worker finished first.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := loggerOf(opts)

	collect := beginPhase(opts.Timer, "collect")
	files, err := CollectSourceFiles(ctx, paths)
	endPhase(opts.Timer, collect, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	logger.Debug("collected source files", "count", len(files))

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusQueued})
	}

	resolver := newConfigResolver(opts.Config, logger)
	results := make([]FormatResult, len(files))

	phase := beginPhase(opts.Timer, "format")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(path, resolver, opts, logger)
			return nil
		})
	}
	err = g.Wait()
	endPhase(opts.Timer, phase, "")
	emit(opts.Progress, Event{Stage: StageFormat, Status: StatusDone})
	return results, err
}

// FormatReader formats source read from r, for stdin input. The config is
// discovered from the current directory unless opts.Config is set.
func FormatReader(r io.Reader, opts FormatOptions) (FormatResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return FormatResult{}, fmt.Errorf("read stdin: %w", err)
	}
	resolver := newConfigResolver(opts.Config, loggerOf(opts))
	cfg, err := resolver.forPath(".")
	if err != nil {
		return FormatResult{Path: StdinPath, Err: err}, nil
	}
	return formatBytes(StdinPath, data, cfg, opts), nil
}

func formatFile(path string, resolver *configResolver, opts FormatOptions, logger *log.Logger) FormatResult {
	start := time.Now()
	fail := func(stage Stage, err error) FormatResult {
		emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return FormatResult{Path: path, Err: err}
	}

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	// #nosec G304 -- path comes from the user's command line
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(StageRead, fmt.Errorf("read: %w", err))
	}
	cfg, err := resolver.forPath(path)
	if err != nil {
		return fail(StageRead, err)
	}

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(data, cfg)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			logger.Debug("cache read failed", "path", path, "err", err)
		}
		if hit && payload.Size == len(data) {
			logger.Debug("cache hit", "path", path)
			emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusDone, Elapsed: time.Since(start)})
			res := FormatResult{Path: path, Cached: true}
			if opts.Stdout {
				res.Formatted = data
			}
			return res
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	res := formatBytes(path, data, cfg, opts)
	if res.Err != nil {
		if errors.Is(res.Err, format.ErrErroneousCst) {
			logger.Warn("skipping file with syntax errors", "path", path, "errors", res.Diagnostics.Len())
		}
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: res.Err, Elapsed: time.Since(start)})
		return res
	}

	if !opts.Check && !opts.Stdout && res.Changed {
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		if err := writeFile(path, res.Formatted); err != nil {
			res.Err = err
			emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusError, Err: err})
			return res
		}
	}
	if opts.Cache != nil && (!res.Changed || (!opts.Check && !opts.Stdout)) {
		// the file on disk now holds formatted content
		formatted := res.Formatted
		if !res.Changed {
			formatted = data
		}
		key = CacheKey(formatted, cfg)
		if err := opts.Cache.Put(key, &DiskPayload{Path: path, ConfigHash: ConfigHash(cfg), Size: len(formatted)}); err != nil {
			logger.Debug("cache write failed", "path", path, "err", err)
		}
	}
	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusDone, Elapsed: time.Since(start)})
	return res
}

// formatBytes formats data. The formatted text is compared against the raw
// bytes, so a file with CRLF endings under an LF config counts as changed.
func formatBytes(path string, data []byte, cfg config.Config, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}
	out, bag, err := format.Source(path, data, cfg, maxDiag)
	if err != nil {
		res.Err = err
		res.Diagnostics = bag
		res.FileSet = source.NewFileSet()
		res.FileSet.AddVirtual(path, data)
		return res
	}
	res.Formatted = []byte(out)
	res.Changed = !bytes.Equal(data, res.Formatted)
	if opts.Check {
		res.Original = data
	}
	return res
}

func writeFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode.Perm()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// CollectSourceFiles expands directories into the .lua and .luau files below
// them and returns the sorted, deduplicated list.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					if d.Name() == ".git" && path != p {
						return filepath.SkipDir
					}
					return nil
				}
				if IsSourceFile(path) {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		// an explicitly named file is formatted whatever its extension
		addFile(p)
	}

	sort.Strings(files)
	return files, nil
}

// IsSourceFile reports whether path has a Luau source extension.
func IsSourceFile(path string) bool {
	switch filepath.Ext(path) {
	case ".lua", ".luau":
		return true
	}
	return false
}

func jobLimit(jobs uint, files int) int {
	n, err := safecast.Conv[int](jobs)
	if err != nil || n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return max(min(n, files), 1)
}

func loggerOf(opts FormatOptions) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return log.New(io.Discard)
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx int, note string) {
	if t != nil {
		t.End(idx, note)
	}
}
