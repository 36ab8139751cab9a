package handlers

import (
	"encoding/json"
	"testing"

	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	tok := signupUser(t, app, "a@x.com", "pw", "Ann")

	t.Run("valid", func(t *testing.T) {
		req := jsonRequest("POST", "/api/v1/blog", map[string]interface{}{
			"title": "T", "content": "C", "published": true,
		}, tok)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "T", body["title"])
		assert.Equal(t, true, body["published"])
		assert.NotEmpty(t, body["authorId"])
	})

	t.Run("missing title", func(t *testing.T) {
		req := jsonRequest("POST", "/api/v1/blog", map[string]interface{}{
			"content": "C",
		}, tok)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("no token writes nothing", func(t *testing.T) {
		var before int64
		db.Model(&models.Post{}).Count(&before)

		req := jsonRequest("POST", "/api/v1/blog", map[string]interface{}{
			"title": "X", "content": "Y",
		}, "")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var after int64
		db.Model(&models.Post{}).Count(&after)
		assert.Equal(t, before, after)
	})
}

func TestListPosts_PublishedOnly(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	tok := signupUser(t, app, "a@x.com", "pw", "Ann")

	createPost(t, app, tok, "published one", "C", true)
	createPost(t, app, tok, "draft", "C", false)

	req := jsonRequest("GET", "/api/v1/blogs", nil, "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var posts []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "published one", posts[0]["title"])

	author, ok := posts[0]["author"].(map[string]interface{})
	require.True(t, ok, "list must include the author")
	assert.Equal(t, "Ann", author["name"])
	assert.Equal(t, "a@x.com", author["email"])
}

func TestListRecent_CapsAtThree(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	tok := signupUser(t, app, "a@x.com", "pw", "Ann")

	for _, title := range []string{"p1", "p2", "p3", "p4", "p5"} {
		createPost(t, app, tok, title, "C", true)
	}

	req := jsonRequest("GET", "/api/v1/blogs/recent", nil, "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var posts []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	assert.Len(t, posts, 3)
}

func TestGetPost(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	tok := signupUser(t, app, "a@x.com", "pw", "Ann")
	postID := createPost(t, app, tok, "T", "C", true)

	t.Run("found", func(t *testing.T) {
		req := jsonRequest("GET", "/api/v1/blog/"+postID, nil, "")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "T", body["title"])
		assert.Equal(t, float64(0), body["likeCount"])
	})

	t.Run("reports like count", func(t *testing.T) {
		likeReq := jsonRequest("POST", "/api/v1/blog/"+postID+"/like", nil, tok)
		likeResp, err := app.Test(likeReq, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, likeResp.StatusCode)

		req := jsonRequest("GET", "/api/v1/blog/"+postID, nil, "")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(1), body["likeCount"])
	})

	t.Run("unknown id", func(t *testing.T) {
		req := jsonRequest("GET", "/api/v1/blog/"+uuid.NewString(), nil, "")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := jsonRequest("GET", "/api/v1/blog/not-a-uuid", nil, "")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdatePost_OwnershipScoped(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	owner := signupUser(t, app, "a@x.com", "pw", "Ann")
	other := signupUser(t, app, "b@x.com", "pw", "Bob")
	postID := createPost(t, app, owner, "T", "C", true)

	t.Run("owner can update", func(t *testing.T) {
		req := jsonRequest("PUT", "/api/v1/blog/"+postID, map[string]interface{}{
			"title": "T2",
		}, owner)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "T2", body["title"])
		assert.Equal(t, "C", body["content"])
	})

	t.Run("non-owner gets 404 and changes nothing", func(t *testing.T) {
		req := jsonRequest("PUT", "/api/v1/blog/"+postID, map[string]interface{}{
			"title": "hijacked",
		}, other)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		var post models.Post
		require.NoError(t, db.Where("id = ?", postID).First(&post).Error)
		assert.Equal(t, "T2", post.Title)
	})
}

func TestDeletePost(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	owner := signupUser(t, app, "a@x.com", "pw", "Ann")
	other := signupUser(t, app, "b@x.com", "pw", "Bob")
	postID := createPost(t, app, owner, "T", "C", true)

	// Attach a comment and likes so the cascade has something to remove
	req := jsonRequest("POST", "/api/v1/blog/"+postID+"/comment", map[string]string{
		"content": "nice post",
	}, other)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = jsonRequest("POST", "/api/v1/blog/"+postID+"/like", nil, other)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	t.Run("non-owner gets 404 and the post survives", func(t *testing.T) {
		req := jsonRequest("DELETE", "/api/v1/blog/"+postID, nil, other)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		listReq := jsonRequest("GET", "/api/v1/blogs", nil, "")
		listResp, err := app.Test(listReq, -1)
		require.NoError(t, err)

		var posts []map[string]interface{}
		require.NoError(t, json.NewDecoder(listResp.Body).Decode(&posts))
		assert.Len(t, posts, 1)
	})

	t.Run("owner delete cascades comments and likes", func(t *testing.T) {
		req := jsonRequest("DELETE", "/api/v1/blog/"+postID, nil, owner)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])

		var comments, likes int64
		db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&comments)
		db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&likes)
		assert.Zero(t, comments, "no orphaned comments may remain")
		assert.Zero(t, likes, "no orphaned likes may remain")
	})
}

func TestComments(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	tok := signupUser(t, app, "a@x.com", "pw", "Ann")
	postID := createPost(t, app, tok, "T", "C", true)

	t.Run("requires auth", func(t *testing.T) {
		req := jsonRequest("POST", "/api/v1/blog/"+postID+"/comment", map[string]string{
			"content": "hi",
		}, "")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("requires content", func(t *testing.T) {
		req := jsonRequest("POST", "/api/v1/blog/"+postID+"/comment", map[string]string{}, tok)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown post", func(t *testing.T) {
		req := jsonRequest("POST", "/api/v1/blog/"+uuid.NewString()+"/comment", map[string]string{
			"content": "hi",
		}, tok)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("create then list publicly", func(t *testing.T) {
		req := jsonRequest("POST", "/api/v1/blog/"+postID+"/comment", map[string]string{
			"content": "first!",
		}, tok)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		listReq := jsonRequest("GET", "/api/v1/blog/"+postID+"/comments", nil, "")
		listResp, err := app.Test(listReq, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, listResp.StatusCode)

		var comments []map[string]interface{}
		require.NoError(t, json.NewDecoder(listResp.Body).Decode(&comments))
		require.Len(t, comments, 1)
		assert.Equal(t, "first!", comments[0]["content"])

		author, ok := comments[0]["author"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Ann", author["name"])
	})
}

func TestLikes_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	tok := signupUser(t, app, "a@x.com", "pw", "Ann")
	postID := createPost(t, app, tok, "T", "C", true)

	// Liking twice keeps exactly one edge
	for i := 0; i < 2; i++ {
		req := jsonRequest("POST", "/api/v1/blog/"+postID+"/like", nil, tok)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var count int64
	db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Unliking twice ends with zero edges and no error
	for i := 0; i < 2; i++ {
		req := jsonRequest("POST", "/api/v1/blog/"+postID+"/unlike", nil, tok)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count)
	assert.Zero(t, count)
}

func TestLike_UnknownPost(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	tok := signupUser(t, app, "a@x.com", "pw", "Ann")

	req := jsonRequest("POST", "/api/v1/blog/"+uuid.NewString()+"/like", nil, tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// End-to-end walk through the main account and publishing flow.
func TestBlogLifecycle(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	signupUser(t, app, "a@x.com", "pw", "Ann")

	// Signin returns a fresh token
	req := jsonRequest("POST", "/api/v1/signin", map[string]string{
		"email": "a@x.com", "password": "pw",
	}, "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	annToken := decodeBody(t, resp)["token"].(string)

	// Create a post and confirm the author binding
	req = jsonRequest("POST", "/api/v1/blog", map[string]interface{}{
		"title": "T", "content": "C", "published": true,
	}, annToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	post := decodeBody(t, resp)

	var ann models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&ann).Error)
	assert.Equal(t, ann.ID.String(), post["authorId"])

	// The post shows up in the public list
	resp, err = app.Test(jsonRequest("GET", "/api/v1/blogs", nil, ""), -1)
	require.NoError(t, err)
	var posts []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	require.Len(t, posts, 1)

	// A different user cannot delete it
	bobToken := signupUser(t, app, "b@x.com", "pw", "Bob")
	postID := post["id"].(string)

	resp, err = app.Test(jsonRequest("DELETE", "/api/v1/blog/"+postID, nil, bobToken), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest("GET", "/api/v1/blogs", nil, ""), -1)
	require.NoError(t, err)
	posts = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	assert.Len(t, posts, 1, "the post must still be listed after the failed delete")
}
