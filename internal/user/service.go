package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/config"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *dbmysql.User `json:"user"`
}

type UpdateProfileRequest struct {
	Username          *string `json:"username,omitempty"`
	Email             *string `json:"email,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetProfile(ctx context.Context, id string) (*dbmysql.User, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*dbmysql.User, error)
	ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error
	Search(ctx context.Context, query string) ([]dbmysql.User, error)
	Delete(ctx context.Context, id string) error
}

type accountService struct {
	repo      Repository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewService(repo Repository, cnf *config.Config) Service {
	return &accountService{
		repo:      repo,
		jwtSecret: cnf.Auth.JWTSecret,
		jwtTTL:    time.Duration(cnf.Auth.TokenTTLHours) * time.Hour,
	}
}

func (s *accountService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := common.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := common.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	if taken, err := s.repo.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: username %s is taken", common.ErrConflict, req.Username)
	}
	if taken, err := s.repo.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: email is already registered", common.ErrConflict)
	}

	hash, err := common.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &dbmysql.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		LastActive:   now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *accountService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Do not reveal whether the username exists.
		return nil, fmt.Errorf("%w: invalid credentials", common.ErrUnauthenticated)
	}
	if !common.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", common.ErrUnauthenticated)
	}

	if err := s.repo.TouchLastActive(ctx, user.ID); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *accountService) issue(user *dbmysql.User) (*AuthResponse, error) {
	token, err := common.GenerateToken(s.jwtSecret, user.ID, user.Username, s.jwtTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *accountService) GetProfile(ctx context.Context, id string) (*dbmysql.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *accountService) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*dbmysql.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if err := common.ValidateUsername(*req.Username); err != nil {
			return nil, err
		}
		if taken, err := s.repo.ExistsByUsername(ctx, *req.Username); err != nil {
			return nil, err
		} else if taken {
			return nil, fmt.Errorf("%w: username %s is taken", common.ErrConflict, *req.Username)
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if err := common.ValidateEmail(*req.Email); err != nil {
			return nil, err
		}
		if taken, err := s.repo.ExistsByEmail(ctx, *req.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, fmt.Errorf("%w: email is already registered", common.ErrConflict)
		}
		user.Email = *req.Email
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = *req.ProfilePictureURL
	}
	user.LastActive = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *accountService) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !common.CheckPassword(user.PasswordHash, req.OldPassword) {
		return fmt.Errorf("%w: wrong password", common.ErrUnauthenticated)
	}
	if err := common.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := common.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	return s.repo.Update(ctx, user)
}

func (s *accountService) Search(ctx context.Context, query string) ([]dbmysql.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", common.ErrInvalidInput)
	}
	return s.repo.Search(ctx, query, 20)
}

func (s *accountService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
