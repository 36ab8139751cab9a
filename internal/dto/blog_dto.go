package dto

type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	ImageURL  string `json:"imageUrl"`
}

type UpdatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
	ImageURL  string `json:"imageUrl"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type UploadImageResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}
