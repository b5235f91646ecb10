package service

import (
	"context"
	"fmt"
	"log"

	"socialnet/internal/auth"
	"socialnet/internal/model"
	"socialnet/internal/repository"
)

// UserService handles account lifecycle: registration, login, profile and
// password updates. Passwords are hashed here, before anything reaches the
// store; there is no implicit before-save hashing anywhere.
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new user account.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	// Check uniqueness up front for friendly errors; the store's unique
	// constraints still catch races.
	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	exists, err = s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Bio:      req.Bio,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("[UserService] Registered user %d (%s)", user.ID, user.Username)
	return user, nil
}

// Login authenticates a user with email and password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Don't reveal whether the email exists.
		return nil, model.ErrInvalidCredentials
	}

	if !auth.VerifyPassword(req.Password, user.Password) {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies the provided fields; nil fields stay unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.repo.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			return nil, model.ErrUsernameExists
		}
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one. A wrong current password fails with ErrInvalidCredentials.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(currentPassword, user.Password) {
		return model.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	log.Printf("[UserService] User %d changed password", userID)
	return nil
}

// SetAvatar stores the new avatar location and returns the previous storage
// key so the caller can clean up the old object.
func (s *UserService) SetAvatar(ctx context.Context, userID int64, avatarURL, avatarKey string) (oldKey string, err error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetAvatar(ctx, userID, avatarURL, avatarKey); err != nil {
		return "", err
	}

	if user.AvatarKey != nil {
		oldKey = *user.AvatarKey
	}
	return oldKey, nil
}
