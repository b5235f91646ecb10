package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"socialnet/internal/model"
)

// mockUserRepository implements repository.UserRepository with per-test
// function fields. Unset fields fall back to not-found / no-op defaults.
type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
	updateProfileFn    func(ctx context.Context, user *model.User) error
	updatePasswordFn   func(ctx context.Context, userID int64, passwordHash string) error
	setAvatarFn        func(ctx context.Context, userID int64, avatarURL, avatarKey string) error

	createCalls         int
	updatePasswordCalls []string // hashes passed to UpdatePassword
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	m.updatePasswordCalls = append(m.updatePasswordCalls, passwordHash)
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, passwordHash)
	}
	return nil
}

func (m *mockUserRepository) SetAvatar(ctx context.Context, userID int64, avatarURL, avatarKey string) error {
	if m.setAvatarFn != nil {
		return m.setAvatarFn(ctx, userID, avatarURL, avatarKey)
	}
	return nil
}

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			user.CreatedAt = time.Now()
			user.UpdatedAt = time.Now()
			return nil
		},
	}
	svc := NewUserService(mockRepo)

	req := &model.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "securepassword123",
		FullName: "Test User",
	}

	user, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Username != req.Username {
		t.Errorf("username = %q, want %q", user.Username, req.Username)
	}
	if user.Email != req.Email {
		t.Errorf("email = %q, want %q", user.Email, req.Email)
	}

	// The stored password must be a valid bcrypt hash, never the plaintext.
	if user.Password == req.Password {
		t.Error("password should be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		t.Error("password hash should be a valid bcrypt hash")
	}

	if mockRepo.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", mockRepo.createCalls)
	}
}

func TestUserService_Register_UsernameExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo)

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "existinguser",
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New User",
	})

	if !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("error = %v, want %v", err, model.ErrUsernameExists)
	}
	if user != nil {
		t.Error("user should be nil when registration fails")
	}
	if mockRepo.createCalls != 0 {
		t.Error("Create should not be called when username exists")
	}
}

func TestUserService_Register_EmailExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "newuser",
		Email:    "taken@example.com",
		Password: "password123",
		FullName: "New User",
	})

	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("error = %v, want %v", err, model.ErrEmailExists)
	}
	if mockRepo.createCalls != 0 {
		t.Error("Create should not be called when email exists")
	}
}

func TestUserService_Register_CheckUsernameError(t *testing.T) {
	dbError := errors.New("database connection failed")
	mockRepo := &mockUserRepository{
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return false, dbError
		},
	}
	svc := NewUserService(mockRepo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
		FullName: "Test User",
	})

	if !errors.Is(err, dbError) {
		t.Errorf("error should wrap the original database error, got %v", err)
	}
}

func TestUserService_Login(t *testing.T) {
	validPassword := "correctpassword"
	validHash, _ := bcrypt.GenerateFromPassword([]byte(validPassword), bcrypt.MinCost)

	testUser := &model.User{
		ID:       1,
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(validHash),
	}

	tests := []struct {
		name       string
		email      string
		password   string
		getByEmail func(ctx context.Context, email string) (*model.User, error)
		wantErr    error
		wantUser   bool
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: validPassword,
			getByEmail: func(ctx context.Context, email string) (*model.User, error) {
				return testUser, nil
			},
			wantErr:  nil,
			wantUser: true,
		},
		{
			name:     "email not found",
			email:    "nobody@example.com",
			password: "anypassword",
			getByEmail: func(ctx context.Context, email string) (*model.User, error) {
				return nil, model.ErrUserNotFound
			},
			wantErr:  model.ErrInvalidCredentials, // don't reveal whether the email exists
			wantUser: false,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrongpassword",
			getByEmail: func(ctx context.Context, email string) (*model.User, error) {
				return testUser, nil
			},
			wantErr:  model.ErrInvalidCredentials,
			wantUser: false,
		},
		{
			name:     "database error",
			email:    "test@example.com",
			password: validPassword,
			getByEmail: func(ctx context.Context, email string) (*model.User, error) {
				return nil, errors.New("database error")
			},
			wantErr:  model.ErrInvalidCredentials,
			wantUser: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{getByEmailFn: tt.getByEmail}
			svc := NewUserService(mockRepo)

			user, err := svc.Login(context.Background(), &model.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.wantUser && user == nil {
				t.Error("expected user, got nil")
			}
			if !tt.wantUser && user != nil {
				t.Error("expected nil user")
			}
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	bio := "old bio"
	stored := func() *model.User {
		return &model.User{ID: 1, Username: "alice", FullName: "Alice A", Bio: &bio}
	}

	t.Run("updates provided fields only", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
				return stored(), nil
			},
		}
		svc := NewUserService(mockRepo)

		newName := "Alice Anderson"
		user, err := svc.UpdateProfile(context.Background(), 1, &model.UpdateProfileRequest{
			FullName: &newName,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.FullName != newName {
			t.Errorf("fullName = %q, want %q", user.FullName, newName)
		}
		if user.Username != "alice" {
			t.Errorf("username changed unexpectedly to %q", user.Username)
		}
		if user.Bio == nil || *user.Bio != bio {
			t.Error("bio should stay unchanged when not provided")
		}
	})

	t.Run("new username taken", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
				return stored(), nil
			},
			existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
				return true, nil
			},
		}
		svc := NewUserService(mockRepo)

		taken := "bob"
		_, err := svc.UpdateProfile(context.Background(), 1, &model.UpdateProfileRequest{
			Username: &taken,
		})
		if !errors.Is(err, model.ErrUsernameExists) {
			t.Errorf("error = %v, want %v", err, model.ErrUsernameExists)
		}
	})

	t.Run("same username skips uniqueness check", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
				return stored(), nil
			},
			existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
				t.Error("ExistsByUsername should not be called for an unchanged username")
				return true, nil
			},
		}
		svc := NewUserService(mockRepo)

		same := "alice"
		if _, err := svc.UpdateProfile(context.Background(), 1, &model.UpdateProfileRequest{Username: &same}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("user not found", func(t *testing.T) {
		svc := NewUserService(&mockUserRepository{})
		_, err := svc.UpdateProfile(context.Background(), 999, &model.UpdateProfileRequest{})
		if !errors.Is(err, model.ErrUserNotFound) {
			t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
		}
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	currentPassword := "oldpassword"
	hash, _ := bcrypt.GenerateFromPassword([]byte(currentPassword), bcrypt.MinCost)

	storedUser := &model.User{ID: 1, Username: "alice", Password: string(hash)}

	t.Run("success stores a new hash", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
				return storedUser, nil
			},
		}
		svc := NewUserService(mockRepo)

		err := svc.ChangePassword(context.Background(), 1, currentPassword, "newpassword")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(mockRepo.updatePasswordCalls) != 1 {
			t.Fatalf("UpdatePassword called %d times, want 1", len(mockRepo.updatePasswordCalls))
		}
		newHash := mockRepo.updatePasswordCalls[0]
		if newHash == "newpassword" {
			t.Error("new password should be hashed before storage")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpassword")); err != nil {
			t.Error("stored hash should verify against the new password")
		}
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
				return storedUser, nil
			},
		}
		svc := NewUserService(mockRepo)

		err := svc.ChangePassword(context.Background(), 1, "wrongpassword", "newpassword")
		if !errors.Is(err, model.ErrInvalidCredentials) {
			t.Errorf("error = %v, want %v", err, model.ErrInvalidCredentials)
		}
		if len(mockRepo.updatePasswordCalls) != 0 {
			t.Error("UpdatePassword should not be called for a wrong current password")
		}
	})
}

func TestUserService_SetAvatar(t *testing.T) {
	oldKey := "avatars/old.jpg"

	t.Run("returns previous key", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
				return &model.User{ID: 1, AvatarKey: &oldKey}, nil
			},
		}
		svc := NewUserService(mockRepo)

		got, err := svc.SetAvatar(context.Background(), 1, "https://cdn/avatars/new.jpg", "avatars/new.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != oldKey {
			t.Errorf("oldKey = %q, want %q", got, oldKey)
		}
	})

	t.Run("no previous avatar", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
				return &model.User{ID: 1}, nil
			},
		}
		svc := NewUserService(mockRepo)

		got, err := svc.SetAvatar(context.Background(), 1, "https://cdn/avatars/new.jpg", "avatars/new.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("oldKey = %q, want empty", got)
		}
	})
}
