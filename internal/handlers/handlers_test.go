package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret-key"

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.PostLike{},
	))
	return db
}

// setupApp wires services and handlers onto a fresh Fiber app with the
// production route layout (rate limiters omitted).
func setupApp(db *gorm.DB) *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret, JWTAccessExpiry: time.Hour}
	codec := token.NewCodec(cfg.JWTSecret, cfg.JWTAccessExpiry)

	authHandler := NewAuthHandler(services.NewAuthService(db, codec))
	blogHandler := NewBlogHandler(services.NewBlogService(db))
	userHandler := NewUserHandler(services.NewUserService(db))

	app := fiber.New()
	v1 := app.Group("/api/v1")

	v1.Post("/signup", authHandler.Signup)
	v1.Post("/signin", authHandler.Signin)

	v1.Get("/blogs", blogHandler.List)
	v1.Get("/blogs/recent", blogHandler.ListRecent)
	v1.Get("/blog/:id", blogHandler.GetByID)
	v1.Get("/blog/:id/comments", blogHandler.GetComments)

	protected := middleware.Protected(cfg)
	v1.Post("/blog", protected, blogHandler.Create)
	v1.Put("/blog/:id", protected, blogHandler.Update)
	v1.Delete("/blog/:id", protected, blogHandler.Delete)
	v1.Post("/blog/:id/comment", protected, blogHandler.AddComment)
	v1.Post("/blog/:id/like", protected, blogHandler.Like)
	v1.Post("/blog/:id/unlike", protected, blogHandler.Unlike)

	v1.Get("/user/profile", protected, userHandler.GetProfile)
	v1.Put("/user/update", protected, userHandler.UpdateProfile)
	v1.Put("/user/change-password", protected, userHandler.ChangePassword)

	return app
}

func jsonRequest(method, target string, body interface{}, bearer string) *http.Request {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// signupUser registers a user through the API and returns their token.
func signupUser(t *testing.T, app *fiber.App, email, password, name string) string {
	t.Helper()

	req := jsonRequest("POST", "/api/v1/signup", map[string]string{
		"email": email, "password": password, "name": name,
	}, "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	tok, ok := body["token"].(string)
	require.True(t, ok, "signup response must contain a token")
	return tok
}

// createPost creates a post through the API and returns its id.
func createPost(t *testing.T, app *fiber.App, bearer, title, content string, published bool) string {
	t.Helper()

	req := jsonRequest("POST", "/api/v1/blog", map[string]interface{}{
		"title": title, "content": content, "published": published,
	}, bearer)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	id, ok := body["id"].(string)
	require.True(t, ok, "create response must contain the post id")
	return id
}
