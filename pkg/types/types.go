// Package types defines core data structures used across ShutterSort modules.
package types

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileEntry represents a file handed to the placement engine.
type FileEntry struct {
	// Path is the path to the source file.
	Path string
	// Name is the base filename.
	Name string
	// Size is the file size in bytes.
	Size int64
	// ModTime is the file modification time.
	ModTime time.Time
	// Extension is the file extension without dot, case preserved (e.g., "jpg", "MP4").
	Extension string
}

// NewFileEntry builds a FileEntry from a path and its stat result.
func NewFileEntry(path string, size int64, modTime time.Time) FileEntry {
	name := filepath.Base(path)
	_, ext := SplitName(name)
	return FileEntry{
		Path:      path,
		Name:      name,
		Size:      size,
		ModTime:   modTime,
		Extension: strings.TrimPrefix(ext, "."),
	}
}

// Stem returns the base filename without its extension.
func (e FileEntry) Stem() string {
	stem, _ := SplitName(e.Name)
	return stem
}

// SplitName splits a base name into stem and extension (with its dot). A
// leading dot is part of the stem, so ".jpg" is all stem and has no extension.
func SplitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// CandidateDate is a date found by one of the extractors.
type CandidateDate struct {
	// Time holds the calendar date and, when HasTime is set, the time of day.
	// Date-only candidates are at midnight UTC.
	Time time.Time
	// HasTime reports whether the time of day is known.
	HasTime bool
	// Source indicates where the date came from (e.g., "EXIF:DateTimeOriginal", "Filename:IMG_%Y%m%d_%H%M%S").
	Source string
}

// SameDay reports whether both candidates fall on the same calendar date, ignoring time.
func (c CandidateDate) SameDay(other CandidateDate) bool {
	y1, m1, d1 := c.Time.Date()
	y2, m2, d2 := other.Time.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateResult is the outcome of a single extractor. Date is nil when nothing was found;
// Reason then explains why.
type DateResult struct {
	Date   *CandidateDate
	Reason string
}

// Found reports whether the extractor produced a date.
func (r DateResult) Found() bool {
	return r.Date != nil
}

// Outcome is the terminal result of processing one file.
type Outcome string

const (
	OutcomeCopied         Outcome = "copied"
	OutcomeMoved          Outcome = "moved"
	OutcomeAlreadyPresent Outcome = "already-present"
	OutcomeSkipped        Outcome = "skipped"
	OutcomeCounted        Outcome = "counted"
)

// Placement describes what the engine did (or would do in dry-run) with one file.
type Placement struct {
	Source  FileEntry
	Outcome Outcome
	// Renamed is set together with OutcomeCopied or OutcomeMoved when the file
	// lands under a name different from its original one.
	Renamed bool
	// Date is the reconciled date; nil when the file was skipped before reconciliation succeeded.
	Date *CandidateDate
	// DestPath is the final destination path, or the path of the existing duplicate.
	DestPath string
	// Reason explains a Skipped outcome.
	Reason string
}

// Stats are the run counters. Total counts every processed file.
type Stats struct {
	Total          int
	Skipped        int
	AlreadyPresent int
	Copied         int
	Moved          int
	Renamed        int
}

// Record folds a single placement into the counters.
func (s *Stats) Record(p Placement) {
	s.Total++
	switch p.Outcome {
	case OutcomeCopied:
		s.Copied++
	case OutcomeMoved:
		s.Moved++
	case OutcomeAlreadyPresent:
		s.AlreadyPresent++
	case OutcomeSkipped:
		s.Skipped++
	}
	if p.Renamed {
		s.Renamed++
	}
}

// NoExtension is the tally key for files without an extension.
const NoExtension = "(none)"

// ExtensionTally counts occurrences of file extensions.
type ExtensionTally map[string]int

// Add records one file with the given extension.
func (t ExtensionTally) Add(ext string) {
	if ext == "" {
		ext = NoExtension
	}
	t[ext]++
}

// Keys returns the recorded extensions in sorted order.
func (t ExtensionTally) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HashAlgorithm selects the digest used for duplicate detection.
type HashAlgorithm string

const (
	HashSHA1   HashAlgorithm = "sha1"
	HashXXHash HashAlgorithm = "xxhash"
)

// RunSummary contains statistics for a completed run.
type RunSummary struct {
	Stats      Stats
	Extensions ExtensionTally
	DryRun     bool
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
