package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/media"
)

func uploadImage(ctx context.Context, u media.Uploader, folder string, f media.File) (string, error) {
	if err := media.Validate(f); err != nil {
		return "", validation(err.Error())
	}
	url, err := u.Upload(ctx, folder, f)
	if err != nil {
		slog.Error("image upload failed", "folder", folder, "error", err)
		return "", upstream("image upload failed", err)
	}
	return url, nil
}
