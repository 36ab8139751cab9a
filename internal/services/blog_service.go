package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPostNotFound covers both a missing post and a post the requester
// does not own, so mutations cannot be used to probe for existence.
var ErrPostNotFound = errors.New("post not found")

type BlogService struct {
	db *gorm.DB
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

func (s *BlogService) CreatePost(authorID uuid.UUID, req *dto.CreatePostRequest) (*models.Post, error) {
	if req.Title == "" || req.Content == "" {
		return nil, ErrMissingFields
	}

	post := models.Post{
		ID:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		AuthorID:  authorID,
		ImageURL:  req.ImageURL,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *BlogService) UpdatePost(authorID, postID uuid.UUID, req *dto.UpdatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := s.db.Scopes(database.OwnedBy(authorID)).Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to look up post: %w", err)
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	if req.ImageURL != "" {
		post.ImageURL = req.ImageURL
	}

	if err := s.db.Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes the post and its comments and likes in one
// transaction so no orphaned rows survive a partial failure.
func (s *BlogService) DeletePost(authorID, postID uuid.UUID) error {
	var post models.Post
	if err := s.db.Scopes(database.OwnedBy(authorID)).Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to look up post: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

func (s *BlogService) GetPost(postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "email", "name")
	}).Where("id = ?", postID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to look up post: %w", err)
	}

	if err := s.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&post.LikeCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	return &post, nil
}

func (s *BlogService) ListPublished(limit int) ([]models.Post, error) {
	var posts []models.Post
	q := s.db.Scopes(database.Published).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "email", "name")
		}).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *BlogService) AddComment(authorID, postID uuid.UUID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, ErrMissingFields
	}

	var post models.Post
	if err := s.db.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to look up post: %w", err)
	}

	comment := models.Comment{
		ID:       uuid.New(),
		Content:  content,
		PostID:   postID,
		AuthorID: authorID,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *BlogService) GetComments(postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "email", "name")
	}).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// LikePost adds the (user, post) edge. Liking an already-liked post is
// a no-op, enforced by the composite unique index.
func (s *BlogService) LikePost(userID, postID uuid.UUID) error {
	var post models.Post
	if err := s.db.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to look up post: %w", err)
	}

	like := models.PostLike{
		ID:     uuid.New(),
		PostID: postID,
		UserID: userID,
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

// UnlikePost removes the edge; removing a missing edge is a no-op.
func (s *BlogService) UnlikePost(userID, postID uuid.UUID) error {
	return s.db.Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLike{}).Error
}
