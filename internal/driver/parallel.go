package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"numerus/internal/diag"
	"numerus/internal/project"
	"numerus/internal/trace"
)

// CheckStatus is the lifecycle of one file in CheckFiles.
type CheckStatus uint8

const (
	CheckQueued CheckStatus = iota
	CheckStarted
	CheckDone
)

// CheckEvent reports progress of a multi-file check.
type CheckEvent struct {
	Index    int
	Path     string
	Status   CheckStatus
	Errors   int
	Warnings int
	Cached   bool
}

// ExpandPaths replaces every directory argument with the sorted list of
// source files below it. Other arguments are kept as given.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := listSourceFiles(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

// listSourceFiles возвращает отсортированный список всех *.npp файлов в директории
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, project.SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckFiles checks paths in parallel with at most jobs workers and returns
// results in input order. events, when non-nil, receives progress and is
// closed before CheckFiles returns.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions, jobs int, events chan<- CheckEvent) ([]*CheckResult, error) {
	if events != nil {
		defer close(events)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "check_files")
	defer span.End("")

	emit := func(ev CheckEvent) {
		if events == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*CheckResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))

	for i, path := range paths {
		emit(CheckEvent{Index: i, Path: path, Status: CheckQueued})
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(CheckEvent{Index: i, Path: path, Status: CheckStarted})

			fileCtx, fileSpan := trace.Start(gctx, trace.ScopeFile, "file")
			res, err := Check(fileCtx, path, opts)
			fileSpan.End(path)
			if err != nil {
				return err
			}
			results[i] = res

			emit(CheckEvent{
				Index:    i,
				Path:     path,
				Status:   CheckDone,
				Errors:   res.Bag.CountBySeverity(diag.SevError),
				Warnings: res.Bag.CountBySeverity(diag.SevWarning),
				Cached:   res.Cached,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
