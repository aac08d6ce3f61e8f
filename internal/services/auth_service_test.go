package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/SAP-F-2025/study-service/internal/auth"
	"github.com/SAP-F-2025/study-service/internal/events"
	"github.com/SAP-F-2025/study-service/internal/models"
	"github.com/SAP-F-2025/study-service/internal/repositories"
	"github.com/SAP-F-2025/study-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validSignup(email string) *SignupRequest {
	return &SignupRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	publisher := events.NewMockEventPublisher(discardLogger())
	service := NewAuthService(&MockRepository{users: users}, publisher, discardLogger(), validator.New())

	var created *models.User
	users.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	users.On("Create", ctx, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.User) }).
		Return(nil)

	resp, err := service.Signup(ctx, validSignup(" a@x.com "))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", resp.Email)
	assert.Equal(t, "Ada Lovelace", resp.Name)

	require.NotNil(t, created)
	assert.NotEqual(t, "secret1", created.PasswordHash)
	assert.NoError(t, auth.CheckPassword(created.PasswordHash, "secret1"))

	signedUp := publisher.EventsOfType(events.EventUserSignedUp)
	require.Len(t, signedUp, 1)
	assert.Equal(t, events.UserSignedUpEvent{Email: "a@x.com", Name: "Ada Lovelace"}, signedUp[0].Data)
	users.AssertExpectations(t)
}

func TestAuthService_SignupTwice(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	service := NewAuthService(&MockRepository{users: users}, nil, discardLogger(), validator.New())

	users.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil).Once()
	users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()
	users.On("ExistsByEmail", ctx, "a@x.com").Return(true, nil).Once()

	_, err := service.Signup(ctx, validSignup("a@x.com"))
	require.NoError(t, err)

	_, err = service.Signup(ctx, validSignup("a@x.com"))
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
	assert.True(t, IsConflict(err))
	users.AssertExpectations(t)
}

func TestAuthService_SignupRace(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	service := NewAuthService(&MockRepository{users: users}, nil, discardLogger(), validator.New())

	users.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	users.On("Create", ctx, mock.Anything).Return(repositories.ErrDuplicate)

	_, err := service.Signup(ctx, validSignup("a@x.com"))
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestAuthService_SignupValidation(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	service := NewAuthService(&MockRepository{users: users}, nil, discardLogger(), validator.New())

	tests := []struct {
		name  string
		edit  func(r *SignupRequest)
		field string
	}{
		{"missing first name", func(r *SignupRequest) { r.FirstName = "" }, "first_name"},
		{"invalid email", func(r *SignupRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *SignupRequest) { r.Password, r.ConfirmPassword = "abc", "abc" }, "password"},
		{"password mismatch", func(r *SignupRequest) { r.ConfirmPassword = "secret2" }, "confirm_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup("a@x.com")
			tt.edit(req)

			_, err := service.Signup(ctx, req)
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field)
			assert.True(t, IsValidation(err))
		})
	}
	users.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_SignupValidationHidesPasswords(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	service := NewAuthService(&MockRepository{users: new(MockUserRepository)}, nil, logger, validator.New())

	req := validSignup("a@x.com")
	req.Password, req.ConfirmPassword = "hunt3", "hunter2x"

	_, err := service.Signup(ctx, req)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)

	logged := buf.String()
	assert.Contains(t, logged, "Validation failed")
	assert.Contains(t, logged, "field=password")
	assert.NotContains(t, logged, "hunt3")
	assert.NotContains(t, logged, "hunter2x")
	for _, e := range verrs {
		assert.Nil(t, e.Value, e.Field)
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	users := new(MockUserRepository)
	publisher := events.NewMockEventPublisher(discardLogger())
	service := NewAuthService(&MockRepository{users: users}, publisher, discardLogger(), validator.New())

	users.On("GetByEmail", ctx, "a@x.com").Return(&models.User{Email: "a@x.com", Name: "Ada Lovelace", PasswordHash: hash}, nil)
	users.On("GetByEmail", ctx, "b@x.com").Return(nil, repositories.ErrNotFound)

	t.Run("correct password", func(t *testing.T) {
		resp, err := service.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", resp.Name)
		assert.Len(t, publisher.EventsOfType(events.EventUserLoggedIn), 1)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "secret2"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.True(t, IsUnauthorized(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Email: "b@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Email: "a@x.com"})
		assert.True(t, IsValidation(err))
	})
}

func TestAuthService_SignupThenLogin_SQLite(t *testing.T) {
	ctx := context.Background()
	service := NewAuthService(newTestRepository(t), nil, discardLogger(), validator.New())

	_, err := service.Signup(ctx, validSignup("a@x.com"))
	require.NoError(t, err)

	_, err = service.Signup(ctx, validSignup("a@x.com"))
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	resp, err := service.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", resp.Name)

	_, err = service.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "wrong1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	list, err := service.ListUsers(ctx, repositories.UserFilters{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, "a@x.com", list.Users[0].Email)
}
