// Package media names the models that carry a photo and the ports used to
// store one.
package media

import (
	"context"
	"fmt"
	"io"
)

const (
	ModelBarbershop = "barbershop"
	ModelBarber     = "barber"
	ModelService    = "service"
)

func ValidModel(model string) bool {
	switch model {
	case ModelBarbershop, ModelBarber, ModelService:
		return true
	}
	return false
}

// ImageKey is the object key of a model's picture.
func ImageKey(model string, id uint, ext string) string {
	return fmt.Sprintf("images/%s/%d%s", model, id, ext)
}

type Repository interface {
	// Exists reports whether the row id of model exists.
	Exists(ctx context.Context, model string, id uint) (bool, error)
	SetPhotoURL(ctx context.Context, model string, id uint, url string) error
}

type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
