package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktrack/internal/cache"
	"tasktrack/internal/errors"
	"tasktrack/internal/model"
)

// nilCache stands in for Redis in tests; the cache client treats a nil
// receiver as a permanent miss.
var nilCache *cache.Client

func TestProfileService_Get(t *testing.T) {
	callerID := uuid.New()

	t.Run("returns own record", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, callerID).Return(&model.User{
			ID:    callerID,
			Email: "me@example.com",
			Name:  "Me",
		}, nil)

		svc := NewProfileService(mockRepo, nilCache)
		user, err := svc.Get(context.Background(), callerID)

		assert.NoError(t, err)
		assert.Equal(t, callerID, user.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, callerID).Return(nil, gorm.ErrInvalidDB)

		svc := NewProfileService(mockRepo, nilCache)
		user, err := svc.Get(context.Background(), callerID)

		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	callerID := uuid.New()
	strPtr := func(s string) *string { return &s }

	existing := func() *model.User {
		return &model.User{
			ID:     callerID,
			Email:  "me@example.com",
			Name:   "Old Name",
			Bio:    "Old bio",
			Avatar: "old-avatar",
		}
	}

	t.Run("updates only supplied fields", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, callerID).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewProfileService(mockRepo, nilCache)
		user, err := svc.UpdateProfile(context.Background(), callerID, UpdateProfileInput{Bio: strPtr("New bio")})

		assert.NoError(t, err)
		assert.Equal(t, "New bio", user.Bio)
		assert.Equal(t, "Old Name", user.Name)
		assert.Equal(t, "old-avatar", user.Avatar)
		assert.Equal(t, "me@example.com", user.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("all displayable fields", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, callerID).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewProfileService(mockRepo, nilCache)
		user, err := svc.UpdateProfile(context.Background(), callerID, UpdateProfileInput{
			Name:   strPtr("New Name"),
			Bio:    strPtr("New bio"),
			Avatar: strPtr("new-avatar"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, "New bio", user.Bio)
		assert.Equal(t, "new-avatar", user.Avatar)
	})
}

func TestProfileService_UpdatePassword(t *testing.T) {
	callerID := uuid.New()
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), 10)

	existing := func() *model.User {
		return &model.User{
			ID:           callerID,
			Email:        "me@example.com",
			PasswordHash: string(oldHash),
		}
	}

	t.Run("successful rotation replaces the hash", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, callerID).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			// old password must no longer verify, new one must
			oldFails := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("old-password")) != nil
			newVerifies := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")) == nil
			return oldFails && newVerifies
		})).Return(nil)

		svc := NewProfileService(mockRepo, nilCache)
		err := svc.UpdatePassword(context.Background(), callerID, "old-password", "new-password")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, callerID).Return(existing(), nil)

		svc := NewProfileService(mockRepo, nilCache)
		err := svc.UpdatePassword(context.Background(), callerID, "not-the-password", "new-password")

		assert.Equal(t, errors.ErrInvalidCredentials, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("new password too short", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, callerID).Return(existing(), nil)

		svc := NewProfileService(mockRepo, nilCache)
		err := svc.UpdatePassword(context.Background(), callerID, "old-password", "short")

		assert.Equal(t, errors.ErrPasswordTooShort, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
