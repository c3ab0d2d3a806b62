// Package walkwalk provides a deterministic, suffix-filtered filesystem
// walker used to gather the source files a reformat pass visits.
package walkwalk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// FileInfo is a minimal, deterministic descriptor of a collected file.
type FileInfo struct {
	Root    string // root directory the file was found under
	RelPath string // root-relative path with forward slashes
	AbsPath string // absolute filesystem path
	Size    int64  // size in bytes at walk time (0 for dangling links)
}

// Filter selects files by base-name suffix. Matching is case-sensitive.
type Filter struct {
	Included []string
	Excluded []string
}

// Match reports whether name ends with an included suffix and with none of
// the excluded ones. Exclusion always wins, so "parser.y.cpp" is rejected
// even though it ends in ".cpp".
func (f Filter) Match(name string) bool {
	if !hasAnySuffix(name, f.Included) {
		return false
	}
	return !hasAnySuffix(name, f.Excluded)
}

// Options tunes a walk.
type Options struct {
	Logger *zap.Logger
}

type walkState struct {
	filter Filter
	log    *zap.Logger
	root   string // root as configured, reported in FileInfo
	walked string // directory actually walked; differs when root is a link
	files  []FileInfo
}

// CollectFiles walks each root in order and returns the files accepted by
// filter. Files are sorted by path within a root; roots keep their order.
//
// A missing root is skipped. Directories that cannot be listed are skipped
// together with their subtree. Symlinked directories are not descended
// into; symlinked files are returned as-is, dangling ones included. A root
// that is itself a link to a directory is walked, and its files are
// reported under the link path.
func CollectFiles(roots []string, filter Filter, opts Options) ([]FileInfo, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	var out []FileInfo
	for _, root := range roots {
		files, err := scanRoot(root, filter, log)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

func scanRoot(root string, filter Filter, log *zap.Logger) ([]FileInfo, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		log.Warn("skipping root", zap.String("root", abs), zap.Error(errOrNotDir(err)))
		return nil, nil
	}
	walked, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	state := &walkState{filter: filter, log: log, root: abs, walked: walked}
	if err := filepath.WalkDir(walked, state.visit); err != nil {
		return nil, err
	}
	sort.Slice(state.files, func(i, j int) bool { return state.files[i].RelPath < state.files[j].RelPath })
	return state.files, nil
}

func (ws *walkState) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		ws.log.Warn("skipping unreadable path", zap.String("path", path), zap.Error(err))
		if d != nil && d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if d.IsDir() {
		return nil
	}
	if !ws.filter.Match(d.Name()) {
		return nil
	}
	if isSymlink(d) {
		return ws.handleLink(path)
	}
	if !d.Type().IsRegular() {
		return nil
	}
	info, err := d.Info()
	if err != nil {
		// Vanished between listing and stat; opening it later reports the error.
		ws.add(path, 0)
		return nil
	}
	ws.add(path, info.Size())
	return nil
}

// handleLink mirrors os.walk: a link to a directory is listed as a
// directory and never followed, anything else is listed as a file.
func (ws *walkState) handleLink(path string) error {
	target, err := os.Stat(path)
	if err != nil {
		ws.add(path, 0)
		return nil
	}
	if target.IsDir() {
		ws.log.Debug("not following directory link", zap.String("path", path))
		return nil
	}
	ws.add(path, target.Size())
	return nil
}

func (ws *walkState) add(path string, size int64) {
	rel, err := filepath.Rel(ws.walked, path)
	if err != nil {
		ws.files = append(ws.files, FileInfo{Root: ws.root, RelPath: filepath.ToSlash(path), AbsPath: path, Size: size})
		return
	}
	ws.files = append(ws.files, FileInfo{
		Root:    ws.root,
		RelPath: filepath.ToSlash(rel),
		AbsPath: filepath.Join(ws.root, rel),
		Size:    size,
	})
}

// isSymlink reports whether the DirEntry is a symlink (file or directory).
func isSymlink(d fs.DirEntry) bool {
	return d.Type()&fs.ModeSymlink != 0
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

func errOrNotDir(err error) error {
	if err != nil {
		return err
	}
	return errors.New("not a directory")
}
