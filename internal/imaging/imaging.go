// Package imaging validates and downsamples submitted screenshots.
package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp decoding
)

const (
	// MaxUploadBytes is the server-side size cap. It is deliberately larger
	// than what a well-behaved client sends after downsampling; the gap
	// catches clients that skipped pre-processing without rejecting them.
	MaxUploadBytes = 5 * 1024 * 1024

	// MaxWidth is the pixel width above which images are downsampled.
	MaxWidth = 1400

	// JPEGQuality is the re-encoding quality factor.
	JPEGQuality = 75
)

// Format is an accepted image format.
type Format struct {
	MIME string
	Ext  string
}

var acceptedFormats = []Format{
	{MIME: "image/jpeg", Ext: "jpg"},
	{MIME: "image/png", Ext: "png"},
	{MIME: "image/webp", Ext: "webp"},
}

// Detect sniffs the actual content type of data, ignoring whatever the
// client claimed, and reports whether it is an accepted format.
func Detect(data []byte) (Format, bool) {
	detected := mimetype.Detect(data)
	for _, f := range acceptedFormats {
		if detected.Is(f.MIME) {
			return f, true
		}
	}
	return Format{}, false
}

// Downsample scales images wider than MaxWidth down proportionally and
// re-encodes them. It is best-effort: on any decode or encode failure, and
// for formats without an encoder (webp), the original bytes pass through
// unchanged.
func Downsample(data []byte, format Format) []byte {
	if format.MIME == "image/webp" {
		return data
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Warn("downsample: decode failed, passing original through", "error", err)
		return data
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	if width <= MaxWidth {
		return data
	}

	height := bounds.Dy() * MaxWidth / width
	scaled := image.NewRGBA(image.Rect(0, 0, MaxWidth, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format.MIME {
	case "image/jpeg":
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: JPEGQuality})
	case "image/png":
		err = png.Encode(&buf, scaled)
	}
	if err != nil {
		slog.Warn("downsample: encode failed, passing original through", "error", err)
		return data
	}

	return buf.Bytes()
}
