package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrEmptyImage        = errors.New("image is empty")
	ErrImageTooLarge     = errors.New("image exceeds size limit")
	ErrUnsupportedFormat = errors.New("image format not allowed")
)

// Các content type được chấp nhận cho ảnh event
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const (
	DefaultMaxImageSize = 5 * 1024 * 1024 // 5MB
	ThumbnailWidth      = 400
)

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	return &ImageProcessor{MaxSize: maxSize}
}

// DetectImage sniff content type từ bytes và trả về extension tương ứng
func DetectImage(data []byte) (contentType, ext string, err error) {
	if len(data) == 0 {
		return "", "", ErrEmptyImage
	}
	mt := mimetype.Detect(data)
	for ct, e := range allowedImageTypes {
		if mt.Is(ct) {
			return ct, e, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
}

// ValidateImage check size và format trước khi upload
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyImage
	}
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: max %dMB", ErrImageTooLarge, p.MaxSize/(1024*1024))
	}
	if _, _, err := DetectImage(data); err != nil {
		return err
	}
	// Header đúng nhưng body hỏng thì DecodeConfig sẽ fail
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return nil
}

// Thumbnail resize ảnh về width (giữ tỉ lệ) rồi encode JPEG chất lượng 85.
// Ảnh nhỏ hơn width thì giữ nguyên kích thước.
func (p *ImageProcessor) Thumbnail(data []byte, width int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
