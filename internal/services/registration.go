package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

// maxTxRetries bounds retries of the atomic registration transaction on
// transient storage failures. Business-rule failures are never retried.
const maxTxRetries = 3

type registrationService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	teamRepo         domain.TeamRepository
	userRepo         domain.UserRepository
	emailService     domain.EmailService
	contextTimeout   time.Duration
}

// NewRegistrationService creates the registration engine with the given
// repositories and email service.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	teamRepo domain.TeamRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		teamRepo:         teamRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		contextTimeout:   timeout,
	}
}

func (s *registrationService) RegisterForEvent(ctx context.Context, eventID, userID, teamName string, teamMemberEmails []string) (*domain.Registration, *domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Precondition order: existence, deadline, uniqueness. First failure wins.
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	if !event.RegistrationOpen(now) {
		return nil, nil, domain.ErrDeadlinePassed
	}

	if _, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("get registration: %w", err)
	}

	var team *domain.Team
	if teamName != "" {
		team, err = buildTeam(event, userID, teamName, teamMemberEmails, now)
		if err != nil {
			return nil, nil, err
		}
	}

	reg := domain.NewRegistration(eventID, userID, "", now)

	// Team creation and registration commit in one transaction; the unique
	// (event_id, user_id) index decides races the read check above cannot.
	for attempt := 1; ; attempt++ {
		err = s.registrationRepo.CreateWithTeam(ctx, reg, team)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, nil, domain.ErrAlreadyRegistered
		}
		if errors.Is(err, domain.ErrTransientStorage) && attempt < maxTxRetries {
			continue
		}
		return nil, nil, fmt.Errorf("create registration: %w", err)
	}

	if team != nil {
		s.notifyInvitees(ctx, team, event)
	}
	return reg, team, nil
}

func (s *registrationService) ListMyRegisteredEvents(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	// Fetch events one by one (N+1); registration lists per user are small.
	eventsByID := make(map[string]*domain.Event)
	result := make([]*domain.RegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		ev, ok := eventsByID[reg.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, reg.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				return nil, fmt.Errorf("get event for registration: %w", err)
			}
			eventsByID[reg.EventID] = ev
		}
		result = append(result, &domain.RegistrationWithEvent{
			Registration: reg,
			Event:        ev,
		})
	}
	return result, nil
}

func (s *registrationService) ListEventRegistrations(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

// notifyInvitees emails pending invitees of a freshly created team; failures
// are not surfaced.
func (s *registrationService) notifyInvitees(ctx context.Context, team *domain.Team, event *domain.Event) {
	if s.emailService == nil {
		return
	}
	leaderName := "Your team leader"
	if leader := team.Leader(); leader != nil {
		if u, err := s.userRepo.GetByID(ctx, leader.UserID); err == nil && u.Name != "" {
			leaderName = u.Name
		}
	}
	for _, inv := range team.PendingInvites() {
		_ = s.emailService.SendTeamInvite(ctx, &domain.TeamInviteEmailData{
			Email:      inv.Email,
			LeaderName: leaderName,
			TeamName:   team.Name,
			EventTitle: event.Title,
		})
	}
}
