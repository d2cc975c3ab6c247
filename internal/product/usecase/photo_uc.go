package usecase

import (
	"context"
	"errors"

	"github.com/campus-market/listing-service/internal/platform/logger"
)

// Storage persists an uploaded photo and yields a stable reference path.
type Storage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

var ErrEmptyPhoto = errors.New("photo file is empty")

type PhotoUsecase struct {
	storage Storage
	logger  *logger.Logger
}

func NewPhotoUsecase(storage Storage, log *logger.Logger) *PhotoUsecase {
	return &PhotoUsecase{storage: storage, logger: log}
}

// UploadPhoto stores at most one photo per creation request. Any storage
// failure is fatal for the request: the caller must not create a product
// with a partial reference.
func (uc *PhotoUsecase) UploadPhoto(ctx context.Context, fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		uc.logger.Warn("PhotoUsecase.UploadPhoto: empty file", "file_name", fileName)
		return "", ErrEmptyPhoto
	}

	ref, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("PhotoUsecase.UploadPhoto: storage upload failed", "file_name", fileName, "error", err.Error())
		return "", err
	}

	uc.logger.Info("PhotoUsecase.UploadPhoto: successful", "file_name", fileName, "ref", ref)
	return ref, nil
}
