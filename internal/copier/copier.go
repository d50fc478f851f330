package copier

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/On-Jun9/ShutterSort/internal/verify"
	"github.com/spf13/afero"
)

// Copier performs every filesystem mutation of a run. When dryRun is set each
// method returns before touching the filesystem, so callers can run their whole
// decision logic unchanged.
type Copier struct {
	fs       afero.Fs
	dryRun   bool
	verifier *verify.Verifier
}

func New(fs afero.Fs, dryRun bool, verifier *verify.Verifier) *Copier {
	return &Copier{
		fs:       fs,
		dryRun:   dryRun,
		verifier: verifier,
	}
}

// EnsureDir creates dir and its parents.
func (c *Copier) EnsureDir(dir string) error {
	if c.dryRun {
		return nil
	}
	if err := c.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// Copy writes src to dst through a .part file so dst never holds a partial copy.
func (c *Copier) Copy(src, dst string) error {
	if c.dryRun {
		return nil
	}
	if err := c.copyVerified(src, dst); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// Move renames src to dst. If the rename fails (different device, missing
// permission) the file is copied and the source removed; an error from that
// fallback is returned. fellBack reports whether the fallback was used.
func (c *Copier) Move(src, dst string) (fellBack bool, err error) {
	if c.dryRun {
		return false, nil
	}
	if err := c.fs.Rename(src, dst); err == nil {
		return false, nil
	}

	if err := c.copyVerified(src, dst); err != nil {
		return true, fmt.Errorf("move %s to %s: %w", src, dst, err)
	}
	if err := c.fs.Remove(src); err != nil {
		return true, fmt.Errorf("remove %s after copy: %w", src, err)
	}
	return true, nil
}

// Remove deletes path; used to prune sources already present at the destination.
func (c *Copier) Remove(path string) error {
	if c.dryRun {
		return nil
	}
	if err := c.fs.Remove(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (c *Copier) copyVerified(src, dst string) error {
	partPath := dst + ".part"
	if err := c.atomicCopy(src, partPath, dst); err != nil {
		c.fs.Remove(partPath)
		return err
	}
	if c.verifier != nil {
		if err := c.verifier.Verify(src, dst); err != nil {
			c.fs.Remove(dst)
			return err
		}
	}
	return nil
}

func (c *Copier) atomicCopy(src, partDest, finalDest string) error {
	srcFile, err := c.fs.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	if err := c.fs.MkdirAll(filepath.Dir(finalDest), 0755); err != nil {
		return err
	}

	dstFile, err := c.fs.Create(partDest)
	if err != nil {
		return err
	}

	_, err = io.Copy(dstFile, srcFile)
	if closeErr := dstFile.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	// Preserve modification time
	info, err := srcFile.Stat()
	if err == nil {
		c.fs.Chtimes(partDest, info.ModTime(), info.ModTime())
	}

	return c.fs.Rename(partDest, finalDest)
}
