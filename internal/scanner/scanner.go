package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/spf13/afero"
)

// WalkFunc is called once per file found during a walk. Returning an error
// aborts the walk.
type WalkFunc func(entry types.FileEntry) error

type Scanner struct {
	fs        afero.Fs
	recursive bool
	maxDepth  int
}

// New creates a scanner. Subdirectories are descended when recursive is set,
// otherwise only while their depth is below maxDepth (the root is depth 0).
func New(fs afero.Fs, recursive bool, maxDepth int) *Scanner {
	return &Scanner{fs: fs, recursive: recursive, maxDepth: maxDepth}
}

// Walk visits root depth-first. Entries of a directory are visited in name
// order; directories that are not descended are ignored, and so are
// symlinked directories.
func (s *Scanner) Walk(root string, fn WalkFunc) error {
	return s.walk(root, 0, fn)
}

func (s *Scanner) walk(dir string, depth int, fn WalkFunc) error {
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}

	for _, info := range infos {
		path := filepath.Join(dir, info.Name())

		// Links to files are followed; links to directories are not, so a
		// link back to an ancestor cannot loop.
		if info.Mode()&os.ModeSymlink != 0 {
			target, err := s.fs.Stat(path)
			if err != nil || target.IsDir() {
				continue
			}
			info = target
		}

		if info.IsDir() {
			if s.recursive || depth < s.maxDepth {
				if err := s.walk(path, depth+1, fn); err != nil {
					return err
				}
			}
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}

		if err := fn(types.NewFileEntry(path, info.Size(), info.ModTime())); err != nil {
			return err
		}
	}

	return nil
}
