package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/On-Jun9/ShutterSort/internal/hasher"
	"github.com/spf13/afero"
)

// maxCollisions bounds the suffix search; reaching it means the directory is
// full of distinct files sharing one stem.
const maxCollisions = 10000

// Resolution is the slot chosen for a file inside its destination directory.
type Resolution struct {
	DestPath string
	// Counter is the numeric suffix used; 0 means the unsuffixed name.
	Counter int
	// Duplicate is set when DestPath already holds identical content.
	Duplicate bool
}

type ConflictResolver struct {
	fs     afero.Fs
	hasher *hasher.Hasher
	// reserved maps destination paths planned during a dry run to the
	// source whose bytes would have landed there.
	reserved map[string]string
}

func NewConflictResolver(fs afero.Fs, h *hasher.Hasher) *ConflictResolver {
	return &ConflictResolver{fs: fs, hasher: h, reserved: make(map[string]string)}
}

// Reserve marks destPath as holding the content of srcPath without anything
// being written. Dry runs use it so later files collide with slots planned
// earlier in the same run.
func (c *ConflictResolver) Reserve(destPath, srcPath string) {
	c.reserved[destPath] = srcPath
}

// Resolve walks name, name_01, name_02, ... inside dir until it finds either a
// free slot or a file with the same content as srcPath. A same-named file with
// different content is never overwritten. Before a free slot is handed out,
// the other files of dir with the same size are compared too, so a copy stored
// under another name is still reported as a duplicate. Hashing failures are
// returned.
func (c *ConflictResolver) Resolve(srcPath, dir, name string) (Resolution, error) {
	src, err := c.fs.Stat(srcPath)
	if err != nil {
		return Resolution{}, fmt.Errorf("stat %s: %w", srcPath, err)
	}

	var srcHash string
	sameContent := func(path string) (bool, error) {
		if srcHash == "" {
			h, err := c.hasher.HashFile(srcPath)
			if err != nil {
				return false, err
			}
			srcHash = h
		}
		got, err := c.hasher.HashFile(path)
		if err != nil {
			return false, err
		}
		return got == srcHash, nil
	}

	for counter := 0; counter < maxCollisions; counter++ {
		candidate := filepath.Join(dir, CandidateName(name, counter))

		if planned, ok := c.reserved[candidate]; ok {
			same, err := sameContent(planned)
			if err != nil {
				return Resolution{}, err
			}
			if same {
				return Resolution{DestPath: candidate, Counter: counter, Duplicate: true}, nil
			}
			continue
		}

		info, err := c.fs.Stat(candidate)
		if os.IsNotExist(err) {
			dup, err := c.findDuplicate(srcPath, src.Size(), dir, sameContent)
			if err != nil {
				return Resolution{}, err
			}
			if dup != "" {
				return Resolution{DestPath: dup, Duplicate: true}, nil
			}
			return Resolution{DestPath: candidate, Counter: counter}, nil
		}
		if err != nil {
			return Resolution{}, fmt.Errorf("stat %s: %w", candidate, err)
		}
		if info.IsDir() {
			continue
		}

		same, err := sameContent(candidate)
		if err != nil {
			return Resolution{}, err
		}
		if same {
			return Resolution{DestPath: candidate, Counter: counter, Duplicate: true}, nil
		}
	}

	return Resolution{}, fmt.Errorf("no free name for %s in %s after %d attempts", name, dir, maxCollisions)
}

// findDuplicate returns the path of a file in dir, existing or reserved, whose
// content matches srcPath, or "" when there is none. Only files of equal size
// are hashed, and srcPath itself never counts as its own duplicate.
func (c *ConflictResolver) findDuplicate(srcPath string, size int64, dir string, sameContent func(string) (bool, error)) (string, error) {
	infos, err := afero.ReadDir(c.fs, dir)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("read directory %s: %w", dir, err)
	}

	for _, info := range infos {
		if !info.Mode().IsRegular() || info.Size() != size {
			continue
		}
		path := filepath.Join(dir, info.Name())
		if SameFile(c.fs, srcPath, path) {
			continue
		}

		same, err := sameContent(path)
		if err != nil {
			return "", err
		}
		if same {
			return path, nil
		}
	}

	var planned []string
	for dest := range c.reserved {
		if filepath.Dir(dest) == filepath.Clean(dir) {
			planned = append(planned, dest)
		}
	}
	sort.Strings(planned)

	for _, dest := range planned {
		info, err := c.fs.Stat(c.reserved[dest])
		if err != nil || info.Size() != size || SameFile(c.fs, srcPath, c.reserved[dest]) {
			continue
		}

		same, err := sameContent(c.reserved[dest])
		if err != nil {
			return "", err
		}
		if same {
			return dest, nil
		}
	}

	return "", nil
}

// SameFile reports whether both paths name the same file.
func SameFile(fs afero.Fs, a, b string) bool {
	if absPath(a) == absPath(b) {
		return true
	}
	ia, err := fs.Stat(a)
	if err != nil {
		return false
	}
	ib, err := fs.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
