package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"zara/internal/diag"
	"zara/internal/lexer"
	"zara/internal/source"
	"zara/internal/token"
	"zara/internal/trace"
)

// SourceExt is the extension of zara source files.
const SourceExt = ".zr"

// DirOptions configure TokenizeDir.
type DirOptions struct {
	MaxDiagnostics int
	Jobs           int // <= 0 means GOMAXPROCS
	Progress       ProgressSink
	Cache          *TokenCache // nil disables caching
}

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Errors []lexer.Error
	Bag    *diag.Bag
	Cached bool
}

// ListSourceFiles returns every *.zr file under dir, sorted.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// TokenizeDir lexes every source file under dir in parallel. Results come
// back in ListSourceFiles order regardless of scheduling. A file that fails
// to load gets an IO4001 diagnostic instead of tokens.
func TokenizeDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tr := trace.FromContext(ctx)
	sp := trace.Begin(tr, trace.ScopePass, "lex", trace.CurrentSpan(ctx))
	defer sp.End("")
	ctx = trace.WithSpan(ctx, sp)

	for _, path := range files {
		emit(opts.Progress, ProgressEvent{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен на запись: грузим всё заранее
	fileIDs := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		fileIDs[i], loadErrs[i] = fileSet.Load(path)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индекс i уникален для каждой горутины, мьютекс не нужен
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			bag := diag.NewBag(opts.MaxDiagnostics)
			results[i] = TokenizeDirResult{Path: path, Bag: bag}

			if loadErrs[i] != nil {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErrs[i].Error()))
				emit(opts.Progress, ProgressEvent{File: path, Stage: StageLoad, Status: StatusError, Err: loadErrs[i], Elapsed: time.Since(started)})
				return nil
			}

			file := fileSet.Get(fileIDs[i])
			results[i].FileID = file.ID

			if toks, errs, ok := opts.Cache.Lookup(file); ok {
				replayErrors(bag, errs)
				results[i].Tokens, results[i].Errors, results[i].Cached = toks, errs, true
				emit(opts.Progress, ProgressEvent{File: path, Stage: StageLex, Status: StatusCached, Elapsed: time.Since(started)})
				return nil
			}

			emit(opts.Progress, ProgressEvent{File: path, Stage: StageLex, Status: StatusWorking})
			toks, errs := lexFile(gctx, file, bag)
			results[i].Tokens, results[i].Errors = toks, errs
			// кэш — оптимизация, ошибка записи не должна ломать прогон
			_ = opts.Cache.Store(file, toks, errs) //nolint:errcheck

			status := StatusDone
			if len(errs) > 0 {
				status = StatusError
			}
			emit(opts.Progress, ProgressEvent{File: path, Stage: StageLex, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func replayErrors(bag *diag.Bag, errs []lexer.Error) {
	r := diag.BagReporter{Bag: bag}
	for _, e := range errs {
		diag.ReportError(r, e.Code, e.Span, e.Msg).Emit()
	}
}
