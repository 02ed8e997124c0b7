package filemgr

import "errors"

// Kind is the editable section an uploaded image belongs to. Each kind has
// its own folder under the upload directory.
type Kind string

const (
	KindGallery Kind = "gallery"
	KindBlog    Kind = "blog"
)

func (k Kind) Valid() bool {
	return k == KindGallery || k == KindBlog
}

const (
	MaxUploadSize = 10 << 20
	MaxDimension  = 1600
	ThumbWidth    = 300
	thumbDir      = "thumb"
)

var (
	AllowedMIMEs = []string{"image/jpeg", "image/png", "image/gif"}

	ErrInvalidKind  = errors.New("invalid upload kind")
	ErrInvalidMIME  = errors.New("invalid MIME type")
	ErrFileTooLarge = errors.New("file size exceeds limit")
	ErrNotAnImage   = errors.New("file is not a decodable image")
)
