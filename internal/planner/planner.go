package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Bucket is the destination directory chosen for a date.
type Bucket struct {
	// Dir is dest/YYYY/<name>, where name is YYYY_MM_DD or an existing
	// YYYY_MM_DD.<suffix> directory.
	Dir string
	// Exists reports whether Dir was found on disk.
	Exists bool
}

type Planner struct {
	fs       afero.Fs
	destRoot string
}

func New(fs afero.Fs, destRoot string) *Planner {
	return &Planner{
		fs:       fs,
		destRoot: destRoot,
	}
}

// DatePrefix formats the directory name for a date: YYYY_MM_DD.
func DatePrefix(t time.Time) string {
	return fmt.Sprintf("%04d_%02d_%02d", t.Year(), int(t.Month()), t.Day())
}

// Resolve finds the directory for t under dest/YYYY. An exact YYYY_MM_DD
// directory wins; otherwise the first YYYY_MM_DD.<suffix> in name order is
// reused. When neither exists the plain YYYY_MM_DD path is returned with
// Exists=false and nothing is created.
func (p *Planner) Resolve(t time.Time) (Bucket, error) {
	yearDir := filepath.Join(p.destRoot, fmt.Sprintf("%04d", t.Year()))
	prefix := DatePrefix(t)
	planned := Bucket{Dir: filepath.Join(yearDir, prefix)}

	infos, err := afero.ReadDir(p.fs, yearDir)
	if err != nil {
		if os.IsNotExist(err) {
			return planned, nil
		}
		return Bucket{}, fmt.Errorf("read year directory %s: %w", yearDir, err)
	}

	suffixed := ""
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		name := info.Name()
		if name == prefix {
			return Bucket{Dir: filepath.Join(yearDir, name), Exists: true}, nil
		}
		if suffixed == "" && strings.HasPrefix(name, prefix+".") {
			suffixed = name
		}
	}

	if suffixed != "" {
		return Bucket{Dir: filepath.Join(yearDir, suffixed), Exists: true}, nil
	}
	return planned, nil
}
