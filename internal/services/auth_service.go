package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
)

type AuthService struct {
	db    *gorm.DB
	codec *token.Codec
}

func NewAuthService(db *gorm.DB, codec *token.Codec) *AuthService {
	return &AuthService{db: db, codec: codec}
}

func (s *AuthService) Signup(req *dto.SignupRequest) (string, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return "", ErrMissingFields
	}

	var existing models.User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return s.codec.Issue(user.ID)
}

func (s *AuthService) Signin(req *dto.SigninRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", ErrMissingFields
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.codec.Issue(user.ID)
}
