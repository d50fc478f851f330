package metadata

import (
	"io"
	"strings"

	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/h2non/filetype"
	"github.com/spf13/afero"
)

// headerSize is enough for every matcher filetype knows about.
const headerSize = 261

var videoExtensions = map[string]bool{
	"mp4": true, "mov": true, "avi": true, "mkv": true, "mxf": true,
	"m4v": true, "webm": true, "wmv": true, "flv": true, "3gp": true,
}

// Extractor picks the metadata backend for a file. Every failure ends up in
// DateResult.Reason; nothing here is fatal.
type Extractor struct {
	fs       afero.Fs
	exif     *EXIFExtractor
	xml      *XMLExtractor
	exiftool *ExifToolExtractor
}

func New(fs afero.Fs) *Extractor {
	return &Extractor{
		fs:   fs,
		exif: NewEXIFExtractor(fs),
		xml:  NewXMLExtractor(fs),
	}
}

// EnableExifTool starts exiftool as a fallback backend for files the built-in
// decoders cannot read.
func (e *Extractor) EnableExifTool() error {
	et, err := NewExifToolExtractor()
	if err != nil {
		return err
	}
	e.exiftool = et
	return nil
}

func (e *Extractor) Close() error {
	if e.exiftool != nil {
		return e.exiftool.Close()
	}
	return nil
}

func (e *Extractor) Extract(entry types.FileEntry) types.DateResult {
	if strings.EqualFold(entry.Extension, "xml") {
		return e.xml.ExtractFromXMLFile(entry.Path)
	}

	var res types.DateResult
	if e.IsVideo(entry) {
		res = e.xml.Extract(entry.Path)
	} else {
		res = e.exif.Extract(entry.Path)
	}

	if !res.Found() && e.exiftool != nil {
		if r := e.exiftool.Extract(entry.Path); r.Found() {
			return r
		}
	}
	return res
}

// Describe returns diagnostic EXIF fields for verbose output.
func (e *Extractor) Describe(entry types.FileEntry) []Field {
	return e.exif.Describe(entry.Path)
}

// MIME sniffs the file header. Unknown or unreadable files return "".
func (e *Extractor) MIME(path string) string {
	f, err := e.fs.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return ""
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

func (e *Extractor) IsVideo(entry types.FileEntry) bool {
	if videoExtensions[strings.ToLower(entry.Extension)] {
		return true
	}
	return strings.HasPrefix(e.MIME(entry.Path), "video/")
}
