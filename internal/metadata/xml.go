package metadata

import (
	"encoding/xml"
	"path/filepath"
	"strings"
	"time"

	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/spf13/afero"
)

// XMLExtractor reads the creation date from the NonRealTimeMeta sidecar that
// Sony cameras write next to each clip (C0007.MP4 -> C0007M01.XML).
type XMLExtractor struct {
	fs afero.Fs
}

func NewXMLExtractor(fs afero.Fs) *XMLExtractor {
	return &XMLExtractor{fs: fs}
}

type nonRealTimeMeta struct {
	XMLName      xml.Name `xml:"NonRealTimeMeta"`
	CreationDate struct {
		Value string `xml:"value,attr"`
	} `xml:"CreationDate"`
}

func (e *XMLExtractor) Extract(videoPath string) types.DateResult {
	xmlPath := e.findXMLPath(videoPath)
	if xmlPath == "" {
		return types.DateResult{Reason: "XML metadata file not found"}
	}
	return e.parse(xmlPath, "XML:CreationDate")
}

func (e *XMLExtractor) parse(xmlPath, source string) types.DateResult {
	data, err := afero.ReadFile(e.fs, xmlPath)
	if err != nil {
		return types.DateResult{Reason: "failed to read XML: " + err.Error()}
	}

	var meta nonRealTimeMeta
	if err := xml.Unmarshal(data, &meta); err != nil {
		return types.DateResult{Reason: "failed to parse XML: " + err.Error()}
	}

	if meta.CreationDate.Value == "" {
		return types.DateResult{Reason: "CreationDate not found in XML"}
	}

	// The offset is kept so the calendar date stays the camera's wall-clock date.
	t, err := time.Parse(time.RFC3339, meta.CreationDate.Value)
	if err != nil {
		return types.DateResult{Reason: "invalid date format: " + err.Error()}
	}

	return types.DateResult{Date: &types.CandidateDate{
		Time:    t,
		HasTime: true,
		Source:  source,
	}}
}

func (e *XMLExtractor) findXMLPath(videoPath string) string {
	dir := filepath.Dir(videoPath)
	basename := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))

	for _, name := range []string{basename + "M01.XML", basename + "M01.xml"} {
		xmlPath := filepath.Join(dir, name)
		if ok, _ := afero.Exists(e.fs, xmlPath); ok {
			return xmlPath
		}
	}

	return ""
}

// ExtractFromXMLFile extracts metadata directly from a sidecar file so it is
// filed next to the clip it describes.
func (e *XMLExtractor) ExtractFromXMLFile(xmlPath string) types.DateResult {
	return e.parse(xmlPath, "XML:CreationDate(direct)")
}
