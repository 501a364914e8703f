package smartbiz

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// ThumbnailWidth is the width, in pixels, of stored product images.
const ThumbnailWidth = 200

// ImageDataURL reads an image file of at most 1MB and returns it as a JPEG
// thumbnail encoded in a data URL, ready to be stored in Product.Image.
func ImageDataURL(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: image file is larger than 1MB", ErrInvalid)
	}
	if len(data) == 0 {
		return "", errors.New("empty image file")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: cannot decode image: %v", ErrInvalid, err)
	}
	if img.Bounds().Dx() > ThumbnailWidth {
		img = imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
