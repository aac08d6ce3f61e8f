package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/study-service/internal/auth"
	"github.com/SAP-F-2025/study-service/internal/events"
	"github.com/SAP-F-2025/study-service/internal/models"
	"github.com/SAP-F-2025/study-service/internal/repositories"
	"github.com/SAP-F-2025/study-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		publisher: publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: "study-service", Component: "auth"}),
		validator: validator,
	}
}

func (s *authService) Signup(ctx context.Context, req *SignupRequest) (resp *UserResponse, err error) {
	req.Email = strings.TrimSpace(req.Email)
	op := s.logger.WithOperation(ctx, "signup", req.Email)
	defer func() { op.LogResult("user", err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Users().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName),
		PasswordHash: hash,
	}
	if err := s.repo.Users().Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publish(ctx, events.NewStudyEvent(events.EventUserSignedUp, events.UserSignedUpEvent{
		Email: user.Email,
		Name:  user.Name,
	}))
	return toUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (resp *UserResponse, err error) {
	req.Email = strings.TrimSpace(req.Email)
	op := s.logger.WithOperation(ctx, "login", req.Email)
	defer func() { op.LogResult("user", err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	s.publish(ctx, events.NewStudyEvent(events.EventUserLoggedIn, events.UserLoggedInEvent{Email: user.Email}))
	return toUserResponse(user), nil
}

func (s *authService) ListUsers(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	users, total, err := s.repo.Users().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := &UserListResponse{
		Users:  make([]*UserResponse, len(users)),
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}
	for i, u := range users {
		resp.Users[i] = toUserResponse(u)
	}
	return resp, nil
}

func (s *authService) publish(ctx context.Context, event *events.StudyEvent) {
	publishEvent(ctx, s.publisher, s.logger, event)
}

func toUserResponse(u *models.User) *UserResponse {
	return &UserResponse{Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

// publishEvent sends event without failing the calling operation.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *ServiceLogger, event *events.StudyEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishStudyEvent(ctx, event); err != nil {
		logger.logger.WarnContext(ctx, "Failed to publish event", "event_type", event.Type, "error", err)
	}
}
