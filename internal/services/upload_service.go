package services

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/config"
)

const maxImageSize = 5 * 1024 * 1024 // 5 MiB

var (
	ErrInvalidImageType = errors.New("invalid image type, only JPEG, PNG, GIF, and WebP are supported")
	ErrImageTooLarge    = errors.New("image too large, maximum size is 5MB")
)

// ProviderError carries the upstream provider's response detail. Unlike
// other store failures this detail is surfaced to the client.
type ProviderError struct {
	Detail string
}

func (e *ProviderError) Error() string {
	return "image provider rejected upload: " + e.Detail
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadService relays validated images to Cloudinary and returns the
// public URL. It persists nothing.
type UploadService struct {
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	baseURL   string
	client    *http.Client
}

func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{
		cloudName: cfg.CloudinaryCloudName,
		apiKey:    cfg.CloudinaryAPIKey,
		apiSecret: cfg.CloudinaryAPISecret,
		folder:    cfg.CloudinaryFolder,
		baseURL:   cfg.CloudinaryBaseURL,
		client:    &http.Client{Timeout: cfg.UploadTimeout},
	}
}

type uploadResult struct {
	SecureURL string `json:"secure_url"`
}

// Upload validates the file and forwards it with signed parameters.
// Both validations run before any outbound call.
func (s *UploadService) Upload(contentType string, size int64, file io.Reader) (string, error) {
	if !allowedImageTypes[contentType] {
		return "", ErrInvalidImageType
	}
	if size > maxImageSize {
		return "", ErrImageTooLarge
	}
	if s.cloudName == "" || s.apiKey == "" || s.apiSecret == "" {
		return "", errors.New("image provider configuration is incomplete")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"folder":    s.folder,
		"timestamp": timestamp,
	}
	signature := signParams(params, s.apiSecret)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "image")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, io.LimitReader(file, maxImageSize)); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	for k, v := range params {
		if err := w.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := w.WriteField("api_key", s.apiKey); err != nil {
		return "", err
	}
	if err := w.WriteField("signature", signature); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", s.baseURL, s.cloudName)
	req, err := http.NewRequest(http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image provider request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{Detail: string(raw)}
	}

	var result uploadResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %w", err)
	}
	if result.SecureURL == "" {
		return "", &ProviderError{Detail: "missing secure_url in response"}
	}

	return result.SecureURL, nil
}

// signParams builds the provider request signature: SHA-1 over the
// alphabetically sorted key=value pairs joined with '&', concatenated
// with the API secret.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
