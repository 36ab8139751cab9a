package dto

import "github.com/google/uuid"

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ProfilePostSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Published bool      `json:"published"`
}

type ProfileResponse struct {
	ID    uuid.UUID            `json:"id"`
	Email string               `json:"email"`
	Name  string               `json:"name"`
	Posts []ProfilePostSummary `json:"posts"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}
