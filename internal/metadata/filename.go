package metadata

import (
	"regexp"
	"time"

	"github.com/On-Jun9/ShutterSort/pkg/types"
)

// datePattern matches a whole filename stem. The first capture group holds the
// date (and possibly time) part, which is validated by parsing it with layout.
type datePattern struct {
	name   string
	re     *regexp.Regexp
	layout string
}

// filenamePatterns are tried in order and the first match wins. The WhatsApp
// variants with trailing counters come before the plain form so the most
// specific template is the one reported.
var filenamePatterns = []datePattern{
	{"%Y:%m:%d %H:%M:%S", regexp.MustCompile(`^(\d{4}:\d{2}:\d{2} \d{2}:\d{2}:\d{2})$`), "2006:01:02 15:04:05"},
	{"IMG-%Y%m%d-WA%f_NN_NN", regexp.MustCompile(`^IMG-(\d{8})-WA\d+_\d{2}_\d{2}$`), "20060102"},
	{"IMG-%Y%m%d-WA%f_NN", regexp.MustCompile(`^IMG-(\d{8})-WA\d+_\d{2}$`), "20060102"},
	{"IMG-%Y%m%d-WA%f_N", regexp.MustCompile(`^IMG-(\d{8})-WA\d+_\d$`), "20060102"},
	{"IMG-%Y%m%d-WA%f", regexp.MustCompile(`^IMG-(\d{8})-WA\d+$`), "20060102"},
	{"PANO_%Y%m%d_%H%M%S", regexp.MustCompile(`^PANO_(\d{8}_\d{6})$`), "20060102_150405"},
	{"IMG_%Y%m%d_%H%M%S", regexp.MustCompile(`^IMG_(\d{8}_\d{6})$`), "20060102_150405"},
	{"IMG_%Y-%m-%d-%f", regexp.MustCompile(`^IMG_(\d{4}-\d{2}-\d{2})-\d+$`), "2006-01-02"},
	{"%Y%m%d_%H%M%S", regexp.MustCompile(`^(\d{8}_\d{6})$`), "20060102_150405"},
	{"VID-%Y%m%d-WA%f", regexp.MustCompile(`^VID-(\d{8})-WA\d+$`), "20060102"},
	{"VID_%Y%m%d_%H%M%S", regexp.MustCompile(`^VID_(\d{8}_\d{6})$`), "20060102_150405"},
	{"%Y%m%d_%H%M%S_%f", regexp.MustCompile(`^(\d{8}_\d{6})_\d+$`), "20060102_150405"},
	{"%Y%m%d-WA%f", regexp.MustCompile(`^(\d{8})-WA\d+$`), "20060102"},
	{"%Y-%m-%d %H.%M.%S", regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}\.\d{2}\.\d{2})$`), "2006-01-02 15.04.05"},
}

// DateFromFilename derives a date from a filename stem (no extension). Only the
// calendar date is kept; the result is at midnight UTC.
func DateFromFilename(stem string) types.DateResult {
	for _, p := range filenamePatterns {
		m := p.re.FindStringSubmatch(stem)
		if m == nil {
			continue
		}
		t, err := time.Parse(p.layout, m[1])
		if err != nil {
			continue
		}
		y, mo, d := t.Date()
		return types.DateResult{Date: &types.CandidateDate{
			Time:   time.Date(y, mo, d, 0, 0, 0, 0, time.UTC),
			Source: "Filename:" + p.name,
		}}
	}
	return types.DateResult{Reason: "date from filename not found"}
}
