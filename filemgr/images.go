package filemgr

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Stored describes a saved image and its thumbnail as public URLs.
type Stored struct {
	URL      string `json:"url"`
	ThumbURL string `json:"thumbUrl"`
}

// Store writes uploaded images below Dir and serves them under URLPrefix.
type Store struct {
	Dir       string
	URLPrefix string
}

func NewStore(dir, urlPrefix string) *Store {
	return &Store{Dir: dir, URLPrefix: urlPrefix}
}

// SaveImageWithThumb validates r as an image, scales it down to fit
// MaxDimension, and writes it plus a ThumbWidth wide thumbnail as JPEG.
func (s *Store) SaveImageWithThumb(r io.Reader, kind Kind) (Stored, error) {
	if !kind.Valid() {
		return Stored{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	buf, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return Stored{}, fmt.Errorf("failed to read file: %w", err)
	}
	if len(buf) > MaxUploadSize {
		return Stored{}, ErrFileTooLarge
	}

	mimeType := http.DetectContentType(buf)
	if !slices.Contains(AllowedMIMEs, mimeType) {
		return Stored{}, fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	img, err := imaging.Decode(bytes.NewReader(buf), imaging.AutoOrientation(true))
	if err != nil {
		return Stored{}, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}
	thumb := imaging.Resize(img, ThumbWidth, 0, imaging.Lanczos)

	name := uuid.New().String() + ".jpg"
	origDir := filepath.Join(s.Dir, string(kind))
	thumbPath := filepath.Join(origDir, thumbDir)
	if err := os.MkdirAll(thumbPath, 0o755); err != nil {
		return Stored{}, fmt.Errorf("mkdir %s: %w", thumbPath, err)
	}

	if err := imaging.Save(img, filepath.Join(origDir, name), imaging.JPEGQuality(85)); err != nil {
		return Stored{}, fmt.Errorf("failed to save image: %w", err)
	}
	if err := imaging.Save(thumb, filepath.Join(thumbPath, name), imaging.JPEGQuality(80)); err != nil {
		return Stored{}, fmt.Errorf("failed to save thumbnail: %w", err)
	}

	log.Printf("filemgr: saved %s image %s (%dx%d)", kind, name, img.Bounds().Dx(), img.Bounds().Dy())
	return Stored{
		URL:      path.Join(s.URLPrefix, string(kind), name),
		ThumbURL: path.Join(s.URLPrefix, string(kind), thumbDir, name),
	}, nil
}
