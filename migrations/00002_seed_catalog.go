package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upSeedCatalog, downSeedCatalog)
}

// upSeedCatalog inserts a small starter catalog of events and councils so a
// fresh deployment has something to browse.
func upSeedCatalog(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	INSERT INTO events (title, organizer, description, date, start_time, end_time,
		location, category, team_size_min, team_size_max, registration_deadline, status)
	VALUES
		('HackNight 24h', 'Technical Council',
		 'An overnight hackathon. Build anything, demo at sunrise.',
		 NOW() + INTERVAL '30 days', '18:00', '18:00',
		 'Main Auditorium', 'hackathon', 2, 4, NOW() + INTERVAL '25 days', 'upcoming'),
		('Robowars', 'Robotics Club',
		 'Combat robotics tournament, 15kg weight class.',
		 NOW() + INTERVAL '45 days', '10:00', '17:00',
		 'Workshop Block', 'robotics', 3, 5, NOW() + INTERVAL '40 days', 'upcoming'),
		('Solo Coding Sprint', 'Technical Council',
		 'Three hours, one editor, individual competitive programming.',
		 NOW() + INTERVAL '14 days', '14:00', '17:00',
		 'Lab 204', 'competitive-programming', 1, 1, NOW() + INTERVAL '10 days', 'upcoming')
	ON CONFLICT DO NOTHING;
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO councils (name, acronym, description, type, year_founded)
	VALUES
		('Technical Council', 'TC', 'Runs hackathons, workshops and the annual tech fest.', 'technical', 2004),
		('Cultural Council', 'CC', 'Music, drama, dance and the spring cultural festival.', 'cultural', 1998),
		('Sports Council', 'SC', 'Inter-college tournaments and campus leagues.', 'sports', 1995),
		('Design Collective', 'DC', 'Posters, branding and stage design for campus events.', 'creative', 2012)
	ON CONFLICT (name) DO NOTHING;
	`)
	return err
}

func downSeedCatalog(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM councils WHERE name IN
			('Technical Council', 'Cultural Council', 'Sports Council', 'Design Collective');
	`); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `
		DELETE FROM events WHERE title IN
			('HackNight 24h', 'Robowars', 'Solo Coding Sprint');
	`)
	return err
}
