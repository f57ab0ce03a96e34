package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type councilService struct {
	councilRepo    domain.CouncilRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewCouncilService creates a CouncilService with the given repositories and
// email service.
func NewCouncilService(
	councilRepo domain.CouncilRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.CouncilService {
	return &councilService{
		councilRepo:    councilRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *councilService) ListCouncils(ctx context.Context, params domain.PaginationParams) ([]*domain.Council, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	councils, total, err := s.councilRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list councils: %w", err)
	}
	if councils == nil {
		councils = []*domain.Council{}
	}
	return councils, total, nil
}

func (s *councilService) GetCouncilByID(ctx context.Context, councilID string) (*domain.Council, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	council, err := s.councilRepo.GetByID(ctx, councilID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get council: %w", err)
	}
	return council, nil
}

// Apply submits a pending application. The storage layer enforces at most one
// pending application per (council, user) pair, so a concurrent duplicate
// surfaces as ErrAlreadyApplied.
func (s *councilService) Apply(ctx context.Context, councilID, userID, position, message string) (*domain.CouncilApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	council, err := s.councilRepo.GetByID(ctx, councilID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get council: %w", err)
	}

	position = strings.TrimSpace(position)
	if position == "" {
		return nil, fmt.Errorf("%w: position is required", domain.ErrInvalidInput)
	}

	app := &domain.CouncilApplication{
		CouncilID: councilID,
		UserID:    userID,
		Position:  position,
		Message:   strings.TrimSpace(message),
		Status:    domain.ApplicationPending,
		AppliedAt: time.Now(),
	}
	if err := s.councilRepo.Apply(ctx, app); err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) {
			return nil, domain.ErrAlreadyApplied
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	// Receipt email is best effort; the application is already persisted.
	if s.emailService != nil {
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
			_ = s.emailService.SendApplicationReceipt(ctx, &domain.ApplicationReceiptEmailData{
				Email:       user.Email,
				Name:        user.Name,
				CouncilName: council.Name,
				Position:    position,
			})
		}
	}
	return app, nil
}

func (s *councilService) ListMyApplications(ctx context.Context, userID string) ([]*domain.CouncilApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	apps, err := s.councilRepo.ListApplicationsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if apps == nil {
		apps = []*domain.CouncilApplication{}
	}
	return apps, nil
}
