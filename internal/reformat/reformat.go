// Package reformat runs the whitespace rules over every eligible file of
// the configured trees and rewrites the files whose content changes.
package reformat

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nucleus-format/internal/config"
	"nucleus-format/internal/diff"
	"nucleus-format/internal/textutil"
	"nucleus-format/internal/walkwalk"
)

// Options carries the collaborators of a pass.
type Options struct {
	Logger *zap.Logger
}

// Summary describes a completed (or aborted) pass.
type Summary struct {
	Scanned   int      // eligible files found
	Rewritten int      // files whose content changed
	Files     []string // rewritten paths, sorted
}

// Run walks cfg.Roots and reformats every eligible file. Files are
// independent and are processed by up to cfg.Jobs workers. The first I/O
// error stops the pass and is returned; files already rewritten stay
// rewritten.
func Run(ctx context.Context, cfg config.Config, opts Options) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if ce := log.Check(zap.DebugLevel, "rules"); ce != nil {
		names := make([]string, 0, 3)
		for _, r := range textutil.Rules() {
			names = append(names, r.Name)
		}
		ce.Write(zap.Strings("order", names))
	}

	filter := walkwalk.Filter{Included: cfg.Included, Excluded: cfg.Excluded}
	files, err := walkwalk.CollectFiles(cfg.Roots, filter, walkwalk.Options{Logger: log})
	if err != nil {
		return Summary{}, fmt.Errorf("collect files: %w", err)
	}

	// Each worker owns its own index, no mutex needed.
	changed := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(cfg.Jobs, len(files))))
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log.Debug("checking",
				zap.String("root", f.Root),
				zap.String("path", f.RelPath),
				zap.Int64("size", f.Size))
			ok, lines, err := File(f.AbsPath)
			if err != nil {
				return err
			}
			if ok {
				changed[i] = true
				log.Info("reformatted", zap.String("path", f.AbsPath), zap.Int("lines", lines))
			}
			return nil
		})
	}
	err = g.Wait()

	sum := Summary{Scanned: len(files)}
	for i, ok := range changed {
		if ok {
			sum.Files = append(sum.Files, files[i].AbsPath)
		}
	}
	sort.Strings(sum.Files)
	sum.Rewritten = len(sum.Files)
	return sum, err
}

// File reformats a single file in place. It reports whether the file was
// rewritten and how many lines changed. An unchanged file is never opened
// for writing, and a missing file is never created.
func File(path string) (changed bool, lines int, err error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return false, 0, fmt.Errorf("reformat %s: %w", path, err)
	}
	out := textutil.Normalize(in)
	if bytes.Equal(in, out) {
		return false, 0, nil
	}
	if err := overwrite(path, out); err != nil {
		return false, 0, fmt.Errorf("reformat %s: %w", path, err)
	}
	return true, diff.ChangedLines(in, out), nil
}

// overwrite truncates the existing file at path and writes data. The file
// keeps its permissions.
func overwrite(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
