// Package imaging attaches local photos to a draft listing. Photos are
// decoded, downscaled and kept in memory behind an opaque blob: reference.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// RefPrefix starts every photo reference
const RefPrefix = "blob:"

// DefaultMaxDimension bounds the longest edge of a thumbnail
const DefaultMaxDimension = 320

// MaxFileSize rejects files larger than this many bytes
const MaxFileSize = 10 << 20

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is an attached, downscaled image
type Photo struct {
	Ref    string
	Name   string
	Width  int // original size
	Height int
	Thumb  image.Image
}

// Registry owns attached photos for the lifetime of the process
type Registry struct {
	mu     sync.RWMutex
	maxDim int
	photos map[string]*Photo
}

// NewRegistry creates a registry producing thumbnails no larger than maxDim
func NewRegistry(maxDim int) *Registry {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	return &Registry{maxDim: maxDim, photos: make(map[string]*Photo)}
}

// AttachFile reads the image at path and registers it
func (r *Registry) AttachFile(path string) (*Photo, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening photo: %w", err)
	}
	defer func() { _ = f.Close() }()

	return r.Attach(filepath.Base(path), f)
}

// Attach decodes the image in src and registers a thumbnail of it
func (r *Registry) Attach(name string, src io.Reader) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("image too large (limit %d MB)", MaxFileSize>>20)
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	b := img.Bounds()
	photo := &Photo{
		Ref:    RefPrefix + uuid.NewString(),
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		Thumb:  Downscale(img, r.maxDim),
	}

	r.mu.Lock()
	r.photos[photo.Ref] = photo
	r.mu.Unlock()

	return photo, nil
}

// Get returns the photo behind ref
func (r *Registry) Get(ref string) (*Photo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.photos[ref]
	return p, ok
}

// Release forgets ref
func (r *Registry) Release(ref string) {
	r.mu.Lock()
	delete(r.photos, ref)
	r.mu.Unlock()
}

// Len returns the number of registered photos
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.photos)
}

// IsRef reports whether s is a photo reference
func IsRef(s string) bool {
	return strings.HasPrefix(s, RefPrefix)
}

// Downscale resizes img so neither dimension exceeds maxDim, keeping the
// aspect ratio. Images already within bounds are returned as is.
func Downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	newW = max(newW, 1)
	newH = max(newH, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
