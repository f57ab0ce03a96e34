package migrations

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// Drives the schema migration against a mock transaction and pins the
// statements that the repositories and domain enums depend on: every enum
// value must be accepted by its CHECK, and the partial unique indexes that
// the constraint-name error mapping keys on must exist under those names.
func TestUpCreateSchema(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE TABLE IF NOT EXISTS users (.+)role IN \('student', 'council_member', 'council_admin', 'admin'\)`,
		`CREATE TABLE IF NOT EXISTS events (.+)status IN \('upcoming', 'ongoing', 'completed', 'cancelled'\)`,
		`CREATE TABLE IF NOT EXISTS teams (.+)status IN \('forming', 'complete', 'confirmed'\)`,
		`CREATE TABLE IF NOT EXISTS team_members (.+)role IN \('leader', 'member'\)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS team_members_leader_idx`,
		`CREATE TABLE IF NOT EXISTS team_invites (.+)status IN \('pending', 'accepted', 'rejected'\)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS team_invites_pending_email_idx`,
		`CREATE TABLE IF NOT EXISTS registrations (.+)status IN \('pending', 'confirmed', 'rejected', 'completed'\)`,
		`CREATE INDEX IF NOT EXISTS registrations_user_id_idx`,
		`CREATE TABLE IF NOT EXISTS councils (.+)type IN \('technical', 'cultural', 'sports', 'creative', 'administrative'\)`,
		`CREATE TABLE IF NOT EXISTS council_members`,
		`CREATE TABLE IF NOT EXISTS council_applications (.+)status IN \('pending', 'approved', 'rejected'\)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS council_applications_pending_idx`,
	}

	mock.ExpectBegin()
	for _, stmt := range statements {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	require.NoError(t, upCreateSchema(context.Background(), tx))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
