// Package imaging normalises uploaded pictures into bounded WebP files.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	ContentType = "image/webp"
	Extension   = ".webp"

	DefaultMaxEdge = 1024
	quality        = 82
)

// Encoder downsizes images whose longest edge exceeds MaxEdge and encodes
// them as lossy WebP.
type Encoder struct {
	MaxEdge int
}

func NewEncoder(maxEdge int) *Encoder {
	if maxEdge <= 0 {
		maxEdge = DefaultMaxEdge
	}
	return &Encoder{MaxEdge: maxEdge}
}

// Normalize decodes a jpeg, png or webp stream and returns WebP bytes.
func (e *Encoder) Normalize(r io.Reader) ([]byte, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img := e.fit(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode %s as webp: %w", format, err)
	}
	return buf.Bytes(), nil
}

func (e *Encoder) fit(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= e.MaxEdge && h <= e.MaxEdge {
		return src
	}

	if w >= h {
		h = h * e.MaxEdge / w
		w = e.MaxEdge
	} else {
		w = w * e.MaxEdge / h
		h = e.MaxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
