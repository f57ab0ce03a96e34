package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type teamService struct {
	teamRepo       domain.TeamRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewTeamService creates the team formation engine with the given
// repositories and email service.
func NewTeamService(
	teamRepo domain.TeamRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// buildTeam validates the team inputs against the event's bounds and returns
// the team aggregate ready to persist. Shared with the registration engine so
// team-backed registrations go through the same rules.
func buildTeam(event *domain.Event, leaderUserID, name string, memberEmails []string, now time.Time) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", domain.ErrInvalidInput)
	}

	// Normalize and dedupe invite emails. Emails are lowercased at every
	// boundary so invite matching is effectively case-insensitive.
	seen := make(map[string]struct{}, len(memberEmails))
	emails := make([]string, 0, len(memberEmails))
	for _, email := range memberEmails {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			continue
		}
		if !emailRegexp.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid member email %q", domain.ErrInvalidInput, email)
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}

	// The leader occupies one slot.
	if len(emails) > event.TeamSize.Max-1 {
		return nil, fmt.Errorf("%w: at most %d team members can be invited", domain.ErrInvalidInput, event.TeamSize.Max-1)
	}

	return domain.NewTeam(name, event.ID, leaderUserID, emails, now), nil
}

func (s *teamService) CreateTeam(ctx context.Context, eventID, leaderUserID, name string, memberEmails []string) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	team, err := buildTeam(event, leaderUserID, name, memberEmails, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	s.notifyInvitees(ctx, team, event)
	return team, nil
}

func (s *teamService) SendInvite(ctx context.Context, teamID, requesterUserID, email string) (*domain.TeamInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}

	leader := team.Leader()
	if leader == nil || leader.UserID != requesterUserID {
		return nil, domain.ErrForbidden
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, team.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Current members plus unanswered invites may not exceed the event's
	// team size bound.
	if len(team.Members)+len(team.PendingInvites()) >= event.TeamSize.Max {
		return nil, fmt.Errorf("%w: team is already at its maximum size of %d", domain.ErrInvalidInput, event.TeamSize.Max)
	}

	inv, err := s.teamRepo.AddInvite(ctx, teamID, email, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateInvite) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("add invite: %w", err)
	}

	team.Invites = append(team.Invites, inv)
	s.notifyInvitee(ctx, inv.Email, team, event)
	return inv, nil
}

func (s *teamService) RespondToInvite(ctx context.Context, inviteID, respondingUserID string, decision domain.InviteStatus) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if decision != domain.InviteAccepted && decision != domain.InviteRejected {
		return nil, fmt.Errorf("%w: response must be %q or %q", domain.ErrInvalidInput, domain.InviteAccepted, domain.InviteRejected)
	}

	user, err := s.userRepo.GetByID(ctx, respondingUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	team, err := s.teamRepo.ResolveInvite(ctx, inviteID, user.ID, user.Email, decision == domain.InviteAccepted, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrInviteNotPending),
			errors.Is(err, domain.ErrForbidden):
			return nil, err
		}
		return nil, fmt.Errorf("resolve invite: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return team, nil
}

func (s *teamService) ListMyTeams(ctx context.Context, userID string) ([]*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	teams, err := s.teamRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if teams == nil {
		teams = []*domain.Team{}
	}
	return teams, nil
}

// notifyInvitees emails every pending invite on the team. Failures are not
// surfaced: the invite is already persisted and can be answered in-app.
func (s *teamService) notifyInvitees(ctx context.Context, team *domain.Team, event *domain.Event) {
	for _, inv := range team.PendingInvites() {
		s.notifyInvitee(ctx, inv.Email, team, event)
	}
}

func (s *teamService) notifyInvitee(ctx context.Context, email string, team *domain.Team, event *domain.Event) {
	if s.emailService == nil {
		return
	}
	leaderName := ""
	if leader := team.Leader(); leader != nil {
		leaderName = leader.Name
		if leaderName == "" {
			if u, err := s.userRepo.GetByID(ctx, leader.UserID); err == nil {
				leaderName = u.Name
			}
		}
	}
	if leaderName == "" {
		leaderName = "Your team leader"
	}
	_ = s.emailService.SendTeamInvite(ctx, &domain.TeamInviteEmailData{
		Email:      email,
		LeaderName: leaderName,
		TeamName:   team.Name,
		EventTitle: event.Title,
	})
}
