package advisory

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultImageMIME is used when the type of an image cannot be determined.
const DefaultImageMIME = "image/png"

var dataURLPrefix = regexp.MustCompile(`^data:(image/\w+);base64,`)

// DecodeImage decodes base64 image data, with or without a
// "data:image/<x>;base64," prefix. The prefix's MIME type wins; otherwise the
// type is sniffed from the bytes, falling back to DefaultImageMIME.
func DecodeImage(s string) (*Image, error) {
	s = strings.TrimSpace(s)
	mime := ""
	if m := dataURLPrefix.FindStringSubmatch(s); m != nil {
		mime = m[1]
		s = s[len(m[0]):]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(s)
	}
	if err != nil || len(data) == 0 {
		return nil, ErrInvalidImage
	}
	if mime == "" {
		mime = DetectImageMIME(data)
	}
	return &Image{Data: data, MIMEType: mime}, nil
}

// DetectImageMIME sniffs data and returns its image MIME type, or
// DefaultImageMIME when data is not a recognizable image.
func DetectImageMIME(data []byte) string {
	mt := mimetype.Detect(data)
	if strings.HasPrefix(mt.String(), "image/") {
		return mt.String()
	}
	return DefaultImageMIME
}

// EncodeDataURL renders img as a base64 data URL.
func EncodeDataURL(img *Image) string {
	mime := img.MIMEType
	if mime == "" {
		mime = DefaultImageMIME
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
