package hasher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/spf13/afero"
)

func TestHashFile_SHA1KnownDigest(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/a.txt", []byte("abc"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	got, err := New(fs, types.HashSHA1).HashFile("/a.txt")
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}

	want := "a9993e364706816aba3e25717850c26c9cd0d89d"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestHashFile_DefaultsToSHA1(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/a.txt", []byte("abc"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	got, err := New(fs, "").HashFile("/a.txt")
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if got != "a9993e364706816aba3e25717850c26c9cd0d89d" {
		t.Fatalf("expected sha1 digest, got %s", got)
	}
}

func TestHashFile_XXHashWidth(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/a.txt", []byte("abc"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	got, err := New(fs, types.HashXXHash).HashFile("/a.txt")
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if len(got) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", got)
	}
}

func TestHashFile_SameAndDifferentContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/one.jpg":   "photo-bytes",
		"/two.jpg":   "photo-bytes",
		"/three.jpg": "other-bytes",
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	for _, algo := range []types.HashAlgorithm{types.HashSHA1, types.HashXXHash} {
		h := New(fs, algo)

		digests := map[string]string{}
		for path := range files {
			d, err := h.HashFile(path)
			if err != nil {
				t.Fatalf("HashFile(%s) error = %v", path, err)
			}
			digests[path] = d
		}

		if digests["/one.jpg"] != digests["/two.jpg"] {
			t.Errorf("%s: identical content should hash equal", algo)
		}
		if digests["/one.jpg"] == digests["/three.jpg"] {
			t.Errorf("%s: different content should not hash equal", algo)
		}
	}
}

func TestHashFile_NonExistentFile(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), types.HashSHA1).HashFile("/non/existent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestHashFile_LargeFileOnDisk(t *testing.T) {
	largeFile := filepath.Join(t.TempDir(), "large.bin")
	const fileSize = 4 * 1024 * 1024

	file, err := os.Create(largeFile)
	if err != nil {
		t.Fatalf("Failed to create large file: %v", err)
	}
	data := make([]byte, 4096)
	for i := 0; i < fileSize/4096; i++ {
		if _, err := file.Write(data); err != nil {
			file.Close()
			t.Fatalf("Failed to write to large file: %v", err)
		}
	}
	file.Close()

	got, err := New(afero.NewOsFs(), types.HashSHA1).HashFile(largeFile)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if len(got) != 40 {
		t.Fatalf("expected 40 hex chars, got %q", got)
	}
}
