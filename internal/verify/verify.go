package verify

import (
	"fmt"

	"github.com/On-Jun9/ShutterSort/internal/hasher"
	"github.com/spf13/afero"
)

// Verifier checks that a freshly written copy matches its source. Size is
// always compared; content only when hashVerify is set.
type Verifier struct {
	fs         afero.Fs
	hasher     *hasher.Hasher
	hashVerify bool
}

func New(fs afero.Fs, h *hasher.Hasher, hashVerify bool) *Verifier {
	return &Verifier{fs: fs, hasher: h, hashVerify: hashVerify}
}

func (v *Verifier) Verify(srcPath, destPath string) error {
	srcInfo, err := v.fs.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("source file not found: %w", err)
	}

	destInfo, err := v.fs.Stat(destPath)
	if err != nil {
		return fmt.Errorf("destination file not found: %w", err)
	}

	if destInfo.Size() != srcInfo.Size() {
		return fmt.Errorf("size mismatch: expected %d, got %d", srcInfo.Size(), destInfo.Size())
	}

	if !v.hashVerify {
		return nil
	}

	srcHash, err := v.hasher.HashFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to hash source: %w", err)
	}

	destHash, err := v.hasher.HashFile(destPath)
	if err != nil {
		return fmt.Errorf("failed to hash destination: %w", err)
	}

	if srcHash != destHash {
		return fmt.Errorf("hash mismatch: src=%s, dest=%s", srcHash, destHash)
	}

	return nil
}
