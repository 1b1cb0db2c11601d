package runner

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/use-splitter/pkg/cache"
	"github.com/siyuan-infoblox/use-splitter/pkg/diff"
	"github.com/siyuan-infoblox/use-splitter/pkg/errors"
	"github.com/siyuan-infoblox/use-splitter/pkg/fixer"
	"github.com/siyuan-infoblox/use-splitter/pkg/tokens"
	"github.com/siyuan-infoblox/use-splitter/pkg/utils"
)

// ErrChangesNeeded is returned in dry-run mode when at least one file would change.
var ErrChangesNeeded = stderrors.New("changes needed")

type Config struct {
	Fixers  []fixer.Fixer // rules to apply, in order
	InPlace bool          // whether to modify files in place
	DryRun  bool          // report files that would change without writing them
	Diff    bool          // print a unified diff for every changed file
	Jobs    int           // files processed at once, 0 means one per CPU
	Exclude []string      // directories skipped while walking
	Cache   *cache.Cache  // optional, nil disables skipping unchanged files
	Out     io.Writer     // report destination, stdout when nil
}

// Result is the outcome for one file.
type Result struct {
	Path    string
	Changed bool
	// Cached is set when the file was skipped because it was clean last time.
	Cached bool
	Output []byte
	Patch  string
	Err    error
}

// Summary counts the outcomes of a run.
type Summary struct {
	Processed int
	Fixed     int
	Cached    int
	Failed    int
}

// Runner applies fixers to PHP files
type Runner struct {
	config Config
	mu     sync.Mutex // serializes writes to out
	out    io.Writer
}

var (
	fixedColor = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
	addColor   = color.New(color.FgGreen)
	delColor   = color.New(color.FgRed)
	hunkColor  = color.New(color.FgCyan)
)

// New creates a Runner for the given configuration
func New(config Config) *Runner {
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	return &Runner{config: config, out: out}
}

func (r *Runner) jobs() int {
	if r.config.Jobs > 0 {
		return r.config.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// writes reports whether fixed content goes back to disk.
func (r *Runner) writes() bool {
	return r.config.InPlace && !r.config.DryRun
}

// FixCode runs every candidate fixer over code and returns the result.
func (r *Runner) FixCode(path, code string) (string, error) {
	stream := tokens.FromCode(code)
	for _, f := range r.config.Fixers {
		if !f.IsCandidate(stream) {
			continue
		}
		if err := f.Fix(path, stream); err != nil {
			return "", fmt.Errorf("%s: %w", f.Name(), err)
		}
		stream.ClearEmptyTokens()
	}
	return stream.Code(), nil
}

// ProcessFile fixes one file. It writes the file back in in-place mode and
// otherwise only reports what would change.
func (r *Runner) ProcessFile(ctx context.Context, path string) (Result, error) {
	res := Result{Path: path}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("%s: %w", errors.ErrMsgFailedToStatFile, err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}

	if r.config.Cache != nil && !r.config.Cache.NeedsFixing(path, src) {
		log.Debug().Str("file", path).Msg("unchanged since last run")
		res.Cached = true
		res.Output = src
		return res, nil
	}

	fixed, err := r.FixCode(path, string(src))
	if err != nil {
		if r.config.Cache != nil {
			r.config.Cache.Forget(path)
		}
		return res, fmt.Errorf("%s: %w", errors.ErrMsgFailedToFixFile, err)
	}
	res.Output = []byte(fixed)
	res.Changed = fixed != string(src)

	if res.Changed && r.config.Diff {
		res.Patch, err = diff.Unified("a/"+path, "b/"+path, src, res.Output, diff.Options{})
		if err != nil {
			return res, err
		}
	}

	if res.Changed && r.writes() {
		if err := os.WriteFile(path, res.Output, info.Mode().Perm()); err != nil {
			return res, fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
	}

	if r.config.Cache != nil && (!res.Changed || r.writes()) {
		r.config.Cache.Set(path, res.Output)
	}

	log.Debug().Str("file", path).Bool("changed", res.Changed).Msg("processed file")
	return res, nil
}

// ProcessFiles fixes files concurrently and reports the results in input order.
func (r *Runner) ProcessFiles(ctx context.Context, filePaths []string) (Summary, error) {
	results := make([]Result, len(filePaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs())
	for i, path := range filePaths {
		i, path := i, path
		g.Go(func() error {
			res, err := r.ProcessFile(gctx, path)
			res.Err = err
			results[i] = res
			// a failing file does not stop the others
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, res := range results {
		r.report(res, &summary)
	}
	r.printSummary(summary)

	if summary.Failed > 0 {
		return summary, fmt.Errorf(errors.ErrMsgFilesFailedToProcess, summary.Failed)
	}
	if r.config.DryRun && summary.Fixed > 0 {
		return summary, fmt.Errorf("%w: "+errors.ErrMsgFilesNeedFixing, ErrChangesNeeded, summary.Fixed)
	}
	return summary, nil
}

// ProcessPath processes a file or directory path
func (r *Runner) ProcessPath(ctx context.Context, path string) (Summary, error) {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		if !r.config.InPlace && !r.config.DryRun && !r.config.Diff {
			return r.printFile(ctx, path)
		}
		return r.ProcessFiles(ctx, []string{path})
	}

	// When processing directories, in-place mode is recommended
	if !r.config.InPlace && !r.config.DryRun && !r.config.Diff {
		r.printf("%s\n", warnColor.Sprint(errors.WarnMsgProcessingDirWithoutInPlace))
		r.printf(errors.InfoMsgUseInPlaceFlag + "\n\n")
	}

	phpFiles, err := utils.FindPHPFiles(path, r.config.Exclude)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindPHPFiles, err)
	}
	if len(phpFiles) == 0 {
		r.printf(errors.InfoMsgNoPHPFilesFound+"\n", path)
		return Summary{}, nil
	}

	r.printf(errors.InfoMsgFoundPHPFiles+"\n\n", len(phpFiles), path)
	return r.ProcessFiles(ctx, phpFiles)
}

// printFile writes the fixed content of a single file to the output.
func (r *Runner) printFile(ctx context.Context, path string) (Summary, error) {
	res, err := r.ProcessFile(ctx, path)
	if err != nil {
		return Summary{Failed: 1}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.out.Write(res.Output); err != nil {
		return Summary{Processed: 1}, err
	}
	summary := Summary{Processed: 1}
	if res.Changed {
		summary.Fixed = 1
	}
	return summary, nil
}

func (r *Runner) report(res Result, summary *Summary) {
	if res.Err != nil {
		summary.Failed++
		r.printf("%s\n", errorColor.Sprintf(errors.InfoMsgErrorProcessing, res.Path, res.Err))
		return
	}

	summary.Processed++
	switch {
	case res.Cached:
		summary.Cached++
	case res.Changed:
		summary.Fixed++
		if r.writes() {
			r.printf("%s\n", fixedColor.Sprintf(errors.InfoMsgFixedFile, res.Path))
		} else {
			r.printf("%s\n", warnColor.Sprintf(errors.InfoMsgWouldFixFile, res.Path))
		}
		if res.Patch != "" {
			r.printf("%s", colorizePatch(res.Patch))
		}
	}
}

func (r *Runner) printSummary(summary Summary) {
	line := fmt.Sprintf(errors.InfoMsgProcessedCount, summary.Processed)
	if summary.Fixed > 0 {
		line += fmt.Sprintf(errors.InfoMsgFixedCount, summary.Fixed)
	}
	if summary.Cached > 0 {
		line += fmt.Sprintf(errors.InfoMsgCachedCount, summary.Cached)
	}
	if summary.Failed > 0 {
		line += errorColor.Sprintf(errors.InfoMsgErrorCount, summary.Failed)
	}
	r.printf("%s\n", line)
}

func (r *Runner) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		log.Warn().Err(err).Msg("failed to write report")
	}
}

// colorizePatch colors added, removed and hunk header lines of a unified diff.
func colorizePatch(patch string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(patch, "\n") {
		body, nl := strings.CutSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			body = color.New(color.Bold).Sprint(body)
		case strings.HasPrefix(body, "@@"):
			body = hunkColor.Sprint(body)
		case strings.HasPrefix(body, "+"):
			body = addColor.Sprint(body)
		case strings.HasPrefix(body, "-"):
			body = delColor.Sprint(body)
		}
		b.WriteString(body)
		if nl {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
