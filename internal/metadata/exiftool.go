package metadata

import (
	"fmt"

	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/barasher/go-exiftool"
)

// exifToolKeys are queried in order. QuickTime containers usually only carry
// CreateDate / MediaCreateDate.
var exifToolKeys = []string{"DateTimeOriginal", "CreateDate", "MediaCreateDate"}

// ExifToolExtractor shells out to a long-running exiftool process. It only works
// on paths of the operating system filesystem.
type ExifToolExtractor struct {
	et *exiftool.Exiftool
}

func NewExifToolExtractor() (*ExifToolExtractor, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &ExifToolExtractor{et: et}, nil
}

func (e *ExifToolExtractor) Extract(path string) types.DateResult {
	results := e.et.ExtractMetadata(path)
	if len(results) == 0 {
		return types.DateResult{Reason: "exiftool returned no metadata"}
	}
	fm := results[0]
	if fm.Err != nil {
		return types.DateResult{Reason: "exiftool: " + fm.Err.Error()}
	}

	for _, key := range exifToolKeys {
		val, err := fm.GetString(key)
		if err != nil {
			continue
		}
		if t, ok := parseEXIFTimestamp(val); ok {
			return types.DateResult{Date: &types.CandidateDate{
				Time:    t,
				HasTime: true,
				Source:  "ExifTool:" + key,
			}}
		}
	}

	return types.DateResult{Reason: "no capture time found by exiftool"}
}

func (e *ExifToolExtractor) Close() error {
	return e.et.Close()
}
