package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSchema, downCreateSchema)
}

func upCreateSchema(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE EXTENSION IF NOT EXISTS pgcrypto;
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		salt TEXT NOT NULL,
		department TEXT NOT NULL,
		year TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'student' CHECK (role IN ('student', 'council_member', 'council_admin', 'admin')),
		phone TEXT,
		roll_number TEXT,
		bio TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		organizer TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL,
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		team_size_min INT NOT NULL DEFAULT 1 CHECK (team_size_min >= 1),
		team_size_max INT NOT NULL DEFAULT 1 CHECK (team_size_max >= team_size_min),
		registration_deadline TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'upcoming'
			CHECK (status IN ('upcoming', 'ongoing', 'completed', 'cancelled')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'forming'
			CHECK (status IN ('forming', 'complete', 'confirmed')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS team_members (
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('leader', 'member')),
		joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (team_id, user_id)
	);
	`)
	if err != nil {
		return err
	}

	// Exactly one leader per team.
	_, err = tx.ExecContext(ctx, `
	CREATE UNIQUE INDEX IF NOT EXISTS team_members_leader_idx
		ON team_members (team_id) WHERE role = 'leader';
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS team_invites (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		email TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'accepted', 'rejected')),
		invited_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		responded_at TIMESTAMPTZ
	);
	`)
	if err != nil {
		return err
	}

	// At most one pending invite per (team, email). Resolved invites are kept
	// as history and do not block a re-invite.
	_, err = tx.ExecContext(ctx, `
	CREATE UNIQUE INDEX IF NOT EXISTS team_invites_pending_email_idx
		ON team_invites (team_id, email) WHERE status = 'pending';
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS registrations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		team_id UUID REFERENCES teams(id) ON DELETE SET NULL,
		status TEXT NOT NULL DEFAULT 'confirmed'
			CHECK (status IN ('pending', 'confirmed', 'rejected', 'completed')),
		registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		result TEXT,
		certificate_issued BOOLEAN NOT NULL DEFAULT false,
		certificate_url TEXT,
		certificate_issued_at TIMESTAMPTZ,
		UNIQUE (event_id, user_id)
	);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE INDEX IF NOT EXISTS registrations_user_id_idx ON registrations (user_id);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS councils (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE,
		acronym TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL
			CHECK (type IN ('technical', 'cultural', 'sports', 'creative', 'administrative')),
		year_founded INT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS council_members (
		council_id UUID NOT NULL REFERENCES councils(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role TEXT NOT NULL DEFAULT 'member',
		joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (council_id, user_id)
	);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS council_applications (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		council_id UUID NOT NULL REFERENCES councils(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		position TEXT NOT NULL,
		message TEXT,
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'approved', 'rejected')),
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		reviewed_at TIMESTAMPTZ,
		reviewed_by UUID REFERENCES users(id)
	);
	`)
	if err != nil {
		return err
	}

	// At most one pending application per (council, user).
	_, err = tx.ExecContext(ctx, `
	CREATE UNIQUE INDEX IF NOT EXISTS council_applications_pending_idx
		ON council_applications (council_id, user_id) WHERE status = 'pending';
	`)
	return err
}

func downCreateSchema(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS council_applications CASCADE;`,
		`DROP TABLE IF EXISTS council_members CASCADE;`,
		`DROP TABLE IF EXISTS councils CASCADE;`,
		`DROP TABLE IF EXISTS registrations CASCADE;`,
		`DROP TABLE IF EXISTS team_invites CASCADE;`,
		`DROP TABLE IF EXISTS team_members CASCADE;`,
		`DROP TABLE IF EXISTS teams CASCADE;`,
		`DROP TABLE IF EXISTS events CASCADE;`,
		`DROP TABLE IF EXISTS users CASCADE;`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
