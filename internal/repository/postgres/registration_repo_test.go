package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"campusevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("solo registration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		reg := domain.NewRegistration("event-1", "alice-1", "", now)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO registrations`).
			WithArgs("event-1", "alice-1", nil, domain.RegistrationConfirmed, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("reg-1"))
		mock.ExpectCommit()

		repo := NewRegistrationRepository(db)
		require.NoError(t, repo.Create(ctx, reg))
		assert.Equal(t, "reg-1", reg.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate maps to ErrAlreadyRegistered", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		reg := domain.NewRegistration("event-1", "alice-1", "", now)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO registrations`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "registrations_event_id_user_id_key"})
		mock.ExpectRollback()

		repo := NewRegistrationRepository(db)
		err = repo.Create(ctx, reg)
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("serialization failure maps to ErrTransientStorage", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		reg := domain.NewRegistration("event-1", "alice-1", "", now)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO registrations`).
			WillReturnError(&pq.Error{Code: "40001"})
		mock.ExpectRollback()

		repo := NewRegistrationRepository(db)
		err = repo.Create(ctx, reg)
		assert.ErrorIs(t, err, domain.ErrTransientStorage)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRegistrationRepository_CreateWithTeam(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("team and registration commit together", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		team := domain.NewTeam("Null Pointers", "event-1", "alice-1", []string{"b@college.edu"}, now)
		reg := domain.NewRegistration("event-1", "alice-1", "", now)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO teams`).
			WithArgs("Null Pointers", "event-1", domain.TeamForming, now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("team-1"))
		mock.ExpectExec(`INSERT INTO team_members`).
			WithArgs("team-1", "alice-1", domain.MemberLeader, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO team_invites`).
			WithArgs("team-1", "b@college.edu", domain.InvitePending, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("invite-1"))
		mock.ExpectQuery(`INSERT INTO registrations`).
			WithArgs("event-1", "alice-1", "team-1", domain.RegistrationConfirmed, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("reg-1"))
		mock.ExpectCommit()

		repo := NewRegistrationRepository(db)
		require.NoError(t, repo.CreateWithTeam(ctx, reg, team))
		assert.Equal(t, "team-1", reg.TeamID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate registration rolls the team back too", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		team := domain.NewTeam("Null Pointers", "event-1", "alice-1", nil, now)
		reg := domain.NewRegistration("event-1", "alice-1", "", now)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO teams`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("team-1"))
		mock.ExpectExec(`INSERT INTO team_members`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO registrations`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "registrations_event_id_user_id_key"})
		mock.ExpectRollback()

		repo := NewRegistrationRepository(db)
		err = repo.CreateWithTeam(ctx, reg, team)
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRegistrationRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM registrations WHERE event_id`).
			WithArgs("event-1", "alice-1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "event_id", "user_id", "team_id", "status",
				"registered_at", "result", "certificate_issued",
				"certificate_url", "certificate_issued_at",
			}).AddRow("reg-1", "event-1", "alice-1", "team-1", "confirmed",
				now, "", false, "", nil))

		repo := NewRegistrationRepository(db)
		reg, err := repo.GetByEventAndUser(ctx, "event-1", "alice-1")
		require.NoError(t, err)
		assert.Equal(t, "reg-1", reg.ID)
		assert.Equal(t, "team-1", reg.TeamID)
		assert.Nil(t, reg.Certificate.IssuedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM registrations WHERE event_id`).
			WithArgs("event-1", "ghost-1").
			WillReturnError(sql.ErrNoRows)

		repo := NewRegistrationRepository(db)
		_, err = repo.GetByEventAndUser(ctx, "event-1", "ghost-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRegistrationRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	issued := now.Add(24 * time.Hour)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM registrations\s+WHERE user_id`).
		WithArgs("alice-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "event_id", "user_id", "team_id", "status",
			"registered_at", "result", "certificate_issued",
			"certificate_url", "certificate_issued_at",
		}).
			AddRow("reg-2", "event-2", "alice-1", "", "confirmed", now, "winner", true, "https://certs/x.pdf", issued).
			AddRow("reg-1", "event-1", "alice-1", "", "confirmed", now.Add(-time.Hour), "", false, "", nil))

	repo := NewRegistrationRepository(db)
	regs, err := repo.ListByUserID(ctx, "alice-1")
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.True(t, regs[0].Certificate.Issued)
	require.NotNil(t, regs[0].Certificate.IssuedAt)
	assert.Equal(t, issued, *regs[0].Certificate.IssuedAt)
	assert.Nil(t, regs[1].Certificate.IssuedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
