package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"pizzadmin/internal/domain"
	applog "pizzadmin/internal/log"
)

// UploadsPrefix is the URL path uploaded images are served under.
const UploadsPrefix = "/uploads/"

var ErrBadImage = errors.New("unsupported image")

// DefaultMaxPixels bounds the decoded size of an upload (24 megapixels).
const DefaultMaxPixels = 24_000_000

// ImageStore re-encodes uploads as JPEG no wider than MaxWidth and writes
// them to Dir under a random name. Uploads whose header declares more than
// MaxPixels are rejected before decoding.
type ImageStore struct {
	Dir       string
	MaxWidth  uint
	MaxPixels int
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{Dir: dir, MaxWidth: 800, MaxPixels: DefaultMaxPixels}
}

// Save returns the relative URL of the stored image.
func (s *ImageStore) Save(up domain.Upload) (string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(up.Data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 ||
		(s.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(s.MaxPixels)) {
		return "", fmt.Errorf("%w: %dx%d exceeds the size limit", ErrBadImage, cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(up.Data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	if s.MaxWidth > 0 && uint(img.Bounds().Dx()) > s.MaxWidth {
		img = resize.Resize(s.MaxWidth, 0, img, resize.Lanczos3)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ".jpg"
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 80}); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return UploadsPrefix + name, nil
}

// Remove deletes a previously saved image. Unknown URLs are ignored.
func (s *ImageStore) Remove(url string) {
	if !strings.HasPrefix(url, UploadsPrefix) {
		return
	}
	name := path.Base(url)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
		applog.Error(nil, "images.remove.fail", err, map[string]any{"url": url})
	}
}
