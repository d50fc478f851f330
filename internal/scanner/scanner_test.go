package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/spf13/afero"
)

func buildTree(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := []string{
		"/src/b.jpg",
		"/src/a.JPG",
		"/src/README",
		"/src/one/c.mp4",
		"/src/one/two/d.heic",
		"/src/one/two/three/e.png",
	}
	for _, f := range files {
		if err := afero.WriteFile(fs, f, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func collect(s *Scanner, root string) ([]types.FileEntry, error) {
	var entries []types.FileEntry
	err := s.Walk(root, func(entry types.FileEntry) error {
		entries = append(entries, entry)
		return nil
	})
	return entries, err
}

func names(entries []types.FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

// TestScanner_Depth는 테스트 코드 동작을 검증하거나 보조합니다.
func TestScanner_Depth(t *testing.T) {
	// 재귀 여부와 최대 깊이에 따라 방문하는 파일이 달라져야 한다.
	tests := []struct {
		name      string
		recursive bool
		maxDepth  int
		want      []string
	}{
		{"root only", false, 0, []string{"README", "a.JPG", "b.jpg"}},
		{"one level", false, 1, []string{"README", "a.JPG", "b.jpg", "c.mp4"}},
		{"two levels", false, 2, []string{"README", "a.JPG", "b.jpg", "c.mp4", "d.heic"}},
		{"recursive", true, 0, []string{"README", "a.JPG", "b.jpg", "c.mp4", "d.heic", "e.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := collect(New(buildTree(t), tt.recursive, tt.maxDepth), "/src")
			if err != nil {
				t.Fatalf("Walk failed: %v", err)
			}
			got := names(entries)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

// TestScanner_FileEntryFields는 테스트 코드 동작을 검증하거나 보조합니다.
func TestScanner_FileEntryFields(t *testing.T) {
	entries, err := collect(New(buildTree(t), false, 0), "/src")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		switch e.Name {
		case "a.JPG":
			if e.Extension != "JPG" {
				t.Errorf("expected extension case preserved, got %q", e.Extension)
			}
			if e.Path != filepath.Join("/src", "a.JPG") {
				t.Errorf("unexpected path %q", e.Path)
			}
			if e.Size != 1 {
				t.Errorf("expected size 1, got %d", e.Size)
			}
		case "README":
			if e.Extension != "" {
				t.Errorf("expected empty extension, got %q", e.Extension)
			}
		}
	}
}

// TestScanner_CallbackErrorAborts는 테스트 코드 동작을 검증하거나 보조합니다.
func TestScanner_CallbackErrorAborts(t *testing.T) {
	// 콜백이 에러를 반환하면 순회가 즉시 중단되어야 한다.
	boom := errors.New("boom")
	calls := 0
	err := New(buildTree(t), true, 0).Walk("/src", func(types.FileEntry) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected walk to stop after first file, got %d calls", calls)
	}
}

// TestScanner_MissingRoot는 테스트 코드 동작을 검증하거나 보조합니다.
func TestScanner_MissingRoot(t *testing.T) {
	_, err := collect(New(afero.NewMemMapFs(), false, 0), "/nope")
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

// TestScanner_OsFs는 테스트 코드 동작을 검증하거나 보조합니다.
func TestScanner_OsFs(t *testing.T) {
	// 실제 파일 시스템에서도 하위 디렉터리를 무시하는지 확인한다.
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "photo.jpg"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "sub", "nested.jpg"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := collect(New(afero.NewOsFs(), false, 0), tmpDir)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "photo.jpg" {
		t.Fatalf("expected only photo.jpg, got %v", names(entries))
	}
}

// TestScanner_SymlinkedDirectoryIsNotFollowed는 테스트 코드 동작을 검증하거나 보조합니다.
func TestScanner_SymlinkedDirectoryIsNotFollowed(t *testing.T) {
	// 상위 디렉터리를 가리키는 링크가 있어도 같은 파일을 반복 방문하면 안 된다.
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "photo.jpg"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(".", filepath.Join(tmpDir, "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink("photo.jpg", filepath.Join(tmpDir, "alias.jpg")); err != nil {
		t.Fatal(err)
	}

	entries, err := collect(New(afero.NewOsFs(), true, 0), tmpDir)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	got := names(entries)
	if len(got) != 2 || got[0] != "alias.jpg" || got[1] != "photo.jpg" {
		t.Fatalf("expected alias.jpg and photo.jpg once each, got %v", got)
	}
}
