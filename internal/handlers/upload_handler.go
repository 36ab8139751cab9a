package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage relays a multipart image to the storage provider and
// returns its public URL. Nothing is persisted here; the caller stores
// the URL on the post or profile it belongs to.
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "No image provided or invalid image format",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unable to read uploaded file",
		})
	}
	defer file.Close()

	imageURL, err := h.uploadService.Upload(fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidImageType), errors.Is(err, services.ErrImageTooLarge):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}

		var provErr *services.ProviderError
		if errors.As(err, &provErr) {
			// Provider detail is deliberately surfaced for uploads.
			slog.Error("image provider upload failed", "error", err, "user_id", userID.String())
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: provErr.Error(),
			})
		}

		slog.Error("image upload failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error uploading image",
		})
	}

	return c.JSON(dto.UploadImageResponse{Success: true, ImageURL: imageURL})
}
