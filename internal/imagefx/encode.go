package imagefx

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"io"
)

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// DataURI renders img as a data:image/png;base64 URI for JSON payloads.
// A nil image yields "".
func DataURI(img image.Image) (string, error) {
	if img == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
