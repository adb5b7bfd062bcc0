// Package media stores uploaded images on local disk after resizing them.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("file is not a supported image")

// MaxUploadSize bounds multipart uploads
const MaxUploadSize = 5 << 20

type Store struct {
	dir        string
	publicPath string
}

// NewStore writes under dir and returns URLs under publicPath, e.g. "/uploads"
func NewStore(dir, publicPath string) *Store {
	return &Store{dir: dir, publicPath: publicPath}
}

func (s *Store) Dir() string {
	return s.dir
}

// SaveImage decodes r, shrinks it to fit maxWidth x maxHeight and saves it as JPEG
func (s *Store) SaveImage(r io.Reader, folder string, maxWidth, maxHeight int) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	b := img.Bounds()
	if b.Dx() > maxWidth || b.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	targetDir := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ".jpg"
	if err := imaging.Save(img, filepath.Join(targetDir, name), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	return path.Join(s.publicPath, folder, name), nil
}
