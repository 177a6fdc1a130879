package media

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/media"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/infra/imaging"
	"github.com/BruksfildServices01/afritrim-api/internal/metrics"
)

type Normalizer interface {
	Normalize(r io.Reader) ([]byte, error)
}

type UploadImage struct {
	repo   domain.Repository
	store  domain.BlobStore
	images Normalizer
	audit  *audit.Dispatcher
	log    zerolog.Logger
}

func NewUploadImage(
	repo domain.Repository,
	store domain.BlobStore,
	images Normalizer,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *UploadImage {
	return &UploadImage{repo: repo, store: store, images: images, audit: audit, log: log}
}

// Execute stores the picture at images/<model>/<id>.webp and points the
// row's photo_url at it.
func (uc *UploadImage) Execute(ctx context.Context, model string, id uint, r io.Reader) (string, error) {
	if !domain.ValidModel(model) {
		return "", httperr.ErrValidation("invalid_model")
	}

	ok, err := uc.repo.Exists(ctx, model, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", httperr.ErrNotFound(model + "_not_found")
	}

	data, err := uc.images.Normalize(r)
	if err != nil {
		return "", httperr.BusinessError{Kind: httperr.KindValidation, Code: "invalid_image", Err: err}
	}

	key := domain.ImageKey(model, id, imaging.Extension)

	url, err := uc.store.Upload(ctx, key, imaging.ContentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		metrics.IncUploadFailed()
		uc.log.Error().Err(err).Str("key", key).Msg("image upload failed")
		return "", httperr.ErrStorage("upload_failed", err)
	}

	if err := uc.repo.SetPhotoURL(ctx, model, id, url); err != nil {
		return "", err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		Action:   "photo_uploaded",
		Entity:   model,
		EntityID: &id,
		Metadata: map[string]string{"url": url},
	})

	return url, nil
}
