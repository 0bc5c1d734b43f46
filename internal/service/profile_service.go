package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tasktrack/internal/cache"
	"tasktrack/internal/errors"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

const (
	profileCacheTTL   = 5 * time.Minute
	minPasswordLength = 6
)

// UpdateProfileInput carries a partial profile update; nil fields are left
// untouched. Id and email are not representable and cannot change here.
type UpdateProfileInput struct {
	Name   *string
	Bio    *string
	Avatar *string
}

// ProfileService reads and updates the caller's own user record.
type ProfileService interface {
	Get(ctx context.Context, callerID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, callerID uuid.UUID, in UpdateProfileInput) (*model.User, error)
	UpdatePassword(ctx context.Context, callerID uuid.UUID, oldPassword, newPassword string) error
}

type profileService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewProfileService builds a ProfileService with repository and cache.
func NewProfileService(users repository.UserRepository, cache *cache.Client) ProfileService {
	return &profileService{users: users, cache: cache}
}

func (s *profileService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id)
}

// Get returns the caller's user record through a read-through cache. The
// cached copy never contains the password hash (it is excluded from JSON).
func (s *profileService) Get(ctx context.Context, callerID uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(callerID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(callerID), payload, profileCacheTTL)
	}
	return user, nil
}

// UpdateProfile updates only the supplied displayable fields of the caller's
// own record.
func (s *profileService) UpdateProfile(ctx context.Context, callerID uuid.UUID, in UpdateProfileInput) (*model.User, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(callerID))
	return user, nil
}

// UpdatePassword rotates the caller's password: the old password must verify
// against the stored hash and the new one must meet the minimum length. The
// plaintext values are never logged or returned.
func (s *profileService) UpdatePassword(ctx context.Context, callerID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return errors.ErrInvalidCredentials
	}
	if len(newPassword) < minPasswordLength {
		return errors.ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(callerID))
	return nil
}
