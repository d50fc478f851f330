// Package hasher computes content digests used to tell whether two files are
// byte-for-byte identical.
package hasher

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
)

type Hasher struct {
	fs        afero.Fs
	algorithm types.HashAlgorithm
}

// New returns a hasher reading from fs. An empty algorithm selects SHA-1.
func New(fs afero.Fs, algorithm types.HashAlgorithm) *Hasher {
	if algorithm == "" {
		algorithm = types.HashSHA1
	}
	return &Hasher{fs: fs, algorithm: algorithm}
}

// HashFile streams the file through the digest and returns it as lowercase hex.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := h.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s for hashing: %w", path, err)
	}
	defer f.Close()

	d, err := h.newDigest()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(d, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return hex.EncodeToString(d.Sum(nil)), nil
}

func (h *Hasher) newDigest() (hash.Hash, error) {
	switch h.algorithm {
	case types.HashSHA1:
		return sha1.New(), nil
	case types.HashXXHash:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm: %s", h.algorithm)
	}
}
