package metadata

import (
	"strings"
	"time"

	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
)

// exifLayout is the fixed "year:month:day hour:minute:second" EXIF timestamp format.
const exifLayout = "2006:01:02 15:04:05"

// dateTags are tried in order; the first one that parses wins.
var dateTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTime,
	exif.DateTimeDigitized,
}

// diagnosticTags are reported in verbose mode only.
var diagnosticTags = []exif.FieldName{
	exif.ExifVersion,
	exif.PixelXDimension,
	exif.XResolution,
	exif.ImageDescription,
	exif.DateTime,
}

type EXIFExtractor struct {
	fs afero.Fs
}

func NewEXIFExtractor(fs afero.Fs) *EXIFExtractor {
	return &EXIFExtractor{fs: fs}
}

func (e *EXIFExtractor) Extract(path string) types.DateResult {
	x, err := e.decode(path)
	if err != nil {
		return types.DateResult{Reason: err.Error()}
	}

	for _, name := range dateTags {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		val, err := tag.StringVal()
		if err != nil {
			continue
		}
		t, ok := parseEXIFTimestamp(val)
		if !ok {
			continue
		}
		return types.DateResult{Date: &types.CandidateDate{
			Time:    t,
			HasTime: true,
			Source:  "EXIF:" + string(name),
		}}
	}

	return types.DateResult{Reason: "no capture time found in EXIF"}
}

// Field is a single EXIF tag rendered for display.
type Field struct {
	Name  string
	Value string
}

// Describe returns the diagnostic tags present in the file. Missing tags and
// undecodable files yield an empty slice.
func (e *EXIFExtractor) Describe(path string) []Field {
	x, err := e.decode(path)
	if err != nil {
		return nil
	}

	var fields []Field
	for _, name := range diagnosticTags {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		fields = append(fields, Field{Name: string(name), Value: tag.String()})
	}
	return fields
}

func (e *EXIFExtractor) decode(path string) (*exif.Exif, error) {
	f, err := e.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, &noEXIFError{err: err}
	}
	return x, nil
}

type noEXIFError struct {
	err error
}

func (e *noEXIFError) Error() string {
	return "no EXIF data: " + e.err.Error()
}

func (e *noEXIFError) Unwrap() error {
	return e.err
}

// parseEXIFTimestamp parses the leading timestamp of val. Trailing sub-second or
// offset suffixes (exiftool prints "2019:04:26 10:26:45+02:00") are ignored.
func parseEXIFTimestamp(val string) (time.Time, bool) {
	val = strings.TrimSpace(val)
	if len(val) > len(exifLayout) {
		val = val[:len(exifLayout)]
	}
	t, err := time.Parse(exifLayout, val)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
