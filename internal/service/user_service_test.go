package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "taskrooms/internal/errors"
	"taskrooms/internal/model"
)

func TestUserService_Update_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(repo, nil)
	_, err := svc.Update(context.Background(), id, "a@b.com", "pw", "user")

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	repo.AssertNotCalled(t, "Update")
}

func TestUserService_Update_FullOverwrite(t *testing.T) {
	repo := new(MockUserRepository)
	id := uuid.New()
	existing := &model.User{ID: id, Email: "old@b.com", PasswordCredential: "old-hash", Role: "admin"}
	repo.On("FindByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(repo, nil)

	// Role omitted from the request body: it is cleared, not preserved.
	user, err := svc.Update(context.Background(), id, "new@b.com", "new-pw", "")
	require.NoError(t, err)

	assert.Equal(t, "new@b.com", user.Email)
	assert.Empty(t, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordCredential), []byte("new-pw")))
	repo.AssertExpectations(t)
}

func TestUserService_Update_OmittedCredentialCleared(t *testing.T) {
	repo := new(MockUserRepository)
	id := uuid.New()
	existing := &model.User{ID: id, Email: "old@b.com", PasswordCredential: "old-hash", Role: "admin"}
	repo.On("FindByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(repo, nil)

	user, err := svc.Update(context.Background(), id, "new@b.com", "", "user")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordCredential)
}

func TestUserService_Delete(t *testing.T) {
	t.Run("not found leaves store untouched", func(t *testing.T) {
		repo := new(MockUserRepository)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(repo, nil)
		err := svc.Delete(context.Background(), id)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("existing record removed", func(t *testing.T) {
		repo := new(MockUserRepository)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(&model.User{ID: id}, nil)
		repo.On("Delete", mock.Anything, id).Return(nil)

		svc := NewUserService(repo, nil)
		require.NoError(t, svc.Delete(context.Background(), id))
		repo.AssertExpectations(t)
	})
}

func TestUserService_List(t *testing.T) {
	repo := new(MockUserRepository)
	users := []model.User{{ID: uuid.New(), Email: "a@b.com"}, {ID: uuid.New(), Email: "c@d.com"}}
	repo.On("List", mock.Anything).Return(users, nil)

	svc := NewUserService(repo, nil)
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, users, got)
}
