package policy

import (
	"strings"
	"testing"
	"time"

	"github.com/On-Jun9/ShutterSort/pkg/types"
)

func found(t time.Time, hasTime bool, source string) types.DateResult {
	return types.DateResult{Date: &types.CandidateDate{Time: t, HasTime: hasTime, Source: source}}
}

var notFound = types.DateResult{Reason: "not found"}

// TestReconcile_SameDayPrefersMetadata는 테스트 코드 동작을 검증하거나 보조합니다.
func TestReconcile_SameDayPrefersMetadata(t *testing.T) {
	// 날짜가 같으면 시각 정보가 있는 메타데이터 결과를 사용해야 한다.
	meta := found(time.Date(2019, 4, 26, 10, 26, 45, 0, time.UTC), true, "EXIF:DateTime")
	name := found(time.Date(2019, 4, 26, 0, 0, 0, 0, time.UTC), false, "Filename:IMG_%Y%m%d_%H%M%S")

	d := Reconcile(meta, name, false)
	if d.Skip || d.Rename {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if d.Date != meta.Date {
		t.Fatal("expected metadata candidate to be chosen")
	}
}

// TestReconcile_ConflictSkipsByDefault는 테스트 코드 동작을 검증하거나 보조합니다.
func TestReconcile_ConflictSkipsByDefault(t *testing.T) {
	// 날짜가 다르고 prefer-metadata가 꺼져 있으면 skip 되어야 한다.
	meta := found(time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC), true, "EXIF:DateTime")
	name := found(time.Date(2019, 4, 26, 0, 0, 0, 0, time.UTC), false, "Filename")

	d := Reconcile(meta, name, false)
	if !d.Skip {
		t.Fatalf("expected skip, got %+v", d)
	}
	if d.Date != nil {
		t.Fatal("skipped decision must not carry a date")
	}
	if !strings.Contains(d.Reason, "2020-01-01") || !strings.Contains(d.Reason, "2019-04-26") {
		t.Fatalf("reason should mention both dates: %s", d.Reason)
	}
}

// TestReconcile_ConflictPreferMetadataRenames는 테스트 코드 동작을 검증하거나 보조합니다.
func TestReconcile_ConflictPreferMetadataRenames(t *testing.T) {
	meta := found(time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC), true, "EXIF:DateTime")
	name := found(time.Date(2019, 4, 26, 0, 0, 0, 0, time.UTC), false, "Filename")

	d := Reconcile(meta, name, true)
	if d.Skip || !d.Rename {
		t.Fatalf("expected rename decision, got %+v", d)
	}
	if d.Date != meta.Date {
		t.Fatal("expected metadata candidate to be chosen")
	}
}

// TestReconcile_SingleSource는 테스트 코드 동작을 검증하거나 보조합니다.
func TestReconcile_SingleSource(t *testing.T) {
	// 한쪽만 날짜가 있으면 그 결과를 그대로 사용해야 한다.
	meta := found(time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC), true, "EXIF:DateTime")
	name := found(time.Date(2019, 4, 26, 0, 0, 0, 0, time.UTC), false, "Filename")

	if d := Reconcile(meta, notFound, false); d.Skip || d.Date != meta.Date {
		t.Fatalf("expected metadata-only decision, got %+v", d)
	}
	if d := Reconcile(notFound, name, false); d.Skip || d.Date != name.Date || d.Date.HasTime {
		t.Fatalf("expected filename-only decision, got %+v", d)
	}
}

// TestReconcile_NeitherSourceSkips는 테스트 코드 동작을 검증하거나 보조합니다.
func TestReconcile_NeitherSourceSkips(t *testing.T) {
	for _, prefer := range []bool{false, true} {
		d := Reconcile(notFound, notFound, prefer)
		if !d.Skip || d.Reason == "" {
			t.Fatalf("expected skip with reason, got %+v", d)
		}
	}
}

// TestCanonicalName_UsesTimestampAndExtension는 테스트 코드 동작을 검증하거나 보조합니다.
func TestCanonicalName_UsesTimestampAndExtension(t *testing.T) {
	ts := time.Date(2020, 1, 1, 8, 5, 9, 0, time.UTC)

	if got := CanonicalName(ts, "IMG_20190426_102645.jpg"); got != "20200101_080509.jpg" {
		t.Fatalf("unexpected canonical name: %s", got)
	}
	if got := CanonicalName(ts, "noext"); got != "20200101_080509" {
		t.Fatalf("unexpected canonical name without extension: %s", got)
	}
	// 점으로 시작하는 이름은 확장자가 없는 것으로 본다.
	if got := CanonicalName(ts, ".jpg"); got != "20200101_080509" {
		t.Fatalf("unexpected canonical name for dotfile: %s", got)
	}
}

// TestCandidateName_Suffixes는 테스트 코드 동작을 검증하거나 보조합니다.
func TestCandidateName_Suffixes(t *testing.T) {
	tests := []struct {
		name    string
		counter int
		want    string
	}{
		{"photo.jpg", 0, "photo.jpg"},
		{"photo.jpg", 1, "photo_01.jpg"},
		{"photo.jpg", 12, "photo_12.jpg"},
		{"photo.jpg", 123, "photo_123.jpg"},
		{"README", 2, "README_02"},
		{".jpg", 1, ".jpg_01"},
		{".hidden.jpg", 1, ".hidden_01.jpg"},
	}

	for _, tt := range tests {
		if got := CandidateName(tt.name, tt.counter); got != tt.want {
			t.Errorf("CandidateName(%q, %d) = %q, want %q", tt.name, tt.counter, got, tt.want)
		}
	}
}
