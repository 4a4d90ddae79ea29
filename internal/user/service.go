package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/saulo-duarte/quizforge/internal/auth"
	"github.com/saulo-duarte/quizforge/internal/config"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService interface {
	Register(ctx context.Context, dto CredentialsDTO) (*User, string, error)
	Login(ctx context.Context, dto CredentialsDTO) (*User, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type userService struct {
	repo       UserRepository
	bcryptCost int
}

func NewService(repo UserRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, bcryptCost: bcryptCost}
}

func (s *userService) Register(ctx context.Context, dto CredentialsDTO) (*User, string, error) {
	log := config.WithContext(ctx)
	username := strings.TrimSpace(dto.Username)

	existing, err := s.repo.GetByUsername(username)
	if err != nil {
		log.WithError(err).Error("Failed to look up username")
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	u := &User{Username: username, PasswordHash: string(hash)}
	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, "", err
	}

	token, err := auth.GenerateUserJWT(u.ID.String(), u.Username, auth.RoleUser, auth.TokenDuration)
	if err != nil {
		return nil, "", err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return u, token, nil
}

func (s *userService) Login(ctx context.Context, dto CredentialsDTO) (*User, string, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.GetByUsername(strings.TrimSpace(dto.Username))
	if err != nil {
		log.WithError(err).Error("Failed to look up username")
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateUserJWT(u.ID.String(), u.Username, auth.RoleUser, auth.TokenDuration)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load user")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
