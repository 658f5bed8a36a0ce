package descriptor

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/arthur-debert/sfo/pkg/types"
)

// ExifTimeLayout is the layout of EXIF date/time fields.
const ExifTimeLayout = "2006:01:02 15:04:05"

var captureDateExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"tif":  true,
	"tiff": true,
	"dng":  true,
	"cr2":  true,
	"nef":  true,
	"arw":  true,
	"heic": true,
}

// SupportsCaptureDate reports whether files with the lowercase extension ext
// are inspected for a capture date.
func SupportsCaptureDate(ext string) bool {
	return captureDateExtensions[ext]
}

// DateExtractor reads the capture date of a file.
type DateExtractor interface {
	CapturedDate(fs types.FS, path string) (time.Time, error)
}

// DateExtractorFunc adapts a function to DateExtractor.
type DateExtractorFunc func(fs types.FS, path string) (time.Time, error)

func (f DateExtractorFunc) CapturedDate(fs types.FS, path string) (time.Time, error) {
	return f(fs, path)
}

// chainExtractor returns the first date any of its extractors finds.
type chainExtractor []DateExtractor

func (c chainExtractor) CapturedDate(fs types.FS, path string) (time.Time, error) {
	var failures []string
	for _, e := range c {
		t, err := e.CapturedDate(fs, path)
		if err == nil {
			return t, nil
		}
		failures = append(failures, err.Error())
	}
	return time.Time{}, fmt.Errorf("no capture date: %s", strings.Join(failures, "; "))
}

// NewPhotoDateExtractor reads embedded EXIF first, then an XMP sidecar.
func NewPhotoDateExtractor() DateExtractor {
	return chainExtractor{
		DateExtractorFunc(ExifDateTimeOriginal),
		DateExtractorFunc(SidecarDate),
	}
}

// ExifDateTimeOriginal decodes the EXIF block of path and returns its
// DateTimeOriginal in local time.
func ExifDateTimeOriginal(fs types.FS, path string) (time.Time, error) {
	f, err := fs.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer func() {
		_ = f.Close()
	}()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, fmt.Errorf("exif: %w", err)
	}
	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		return time.Time{}, fmt.Errorf("exif: %w", err)
	}
	raw, err := tag.StringVal()
	if err != nil {
		return time.Time{}, fmt.Errorf("exif DateTimeOriginal: %w", err)
	}
	return time.ParseInLocation(ExifTimeLayout, strings.TrimSpace(strings.TrimRight(raw, "\x00")), time.Local)
}

var sidecarProperties = []string{"DateTimeOriginal", "DateCreated", "CreateDate"}

var sidecarLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	ExifTimeLayout,
}

// SidecarPaths lists the XMP sidecar names tried for path, in order:
// "<file>.xmp" then "<stem>.xmp".
func SidecarPaths(path string) []string {
	dir, name := filepath.Split(path)
	base, _ := SplitName(name)
	out := []string{path + ".xmp"}
	if base != name {
		out = append(out, filepath.Join(dir, base+".xmp"))
	}
	return out
}

// SidecarDate reads the first XMP sidecar found next to path. The date is
// taken from DateTimeOriginal, else DateCreated, else CreateDate.
func SidecarDate(fs types.FS, path string) (time.Time, error) {
	for _, sidecar := range SidecarPaths(path) {
		data, err := fs.ReadFile(sidecar)
		if err != nil {
			continue
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			return time.Time{}, fmt.Errorf("xmp %s: %w", sidecar, err)
		}
		values := collectXMPValues(doc.Root())
		for _, prop := range sidecarProperties {
			if v, ok := values[prop]; ok {
				return parseXMPDate(v)
			}
		}
		return time.Time{}, fmt.Errorf("xmp %s: no date property", sidecar)
	}
	return time.Time{}, fmt.Errorf("no xmp sidecar")
}

// collectXMPValues gathers the first value of every interesting property,
// whether written as an attribute or as an element, keyed by local name.
func collectXMPValues(root *etree.Element) map[string]string {
	values := make(map[string]string)
	if root == nil {
		return values
	}
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, attr := range e.Attr {
			if isSidecarProperty(attr.Key) {
				if _, seen := values[attr.Key]; !seen {
					values[attr.Key] = attr.Value
				}
			}
		}
		if isSidecarProperty(e.Tag) {
			if _, seen := values[e.Tag]; !seen {
				values[e.Tag] = strings.TrimSpace(e.Text())
			}
		}
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return values
}

func isSidecarProperty(name string) bool {
	for _, p := range sidecarProperties {
		if p == name {
			return true
		}
	}
	return false
}

func parseXMPDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range sidecarLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized xmp date %q", v)
}
