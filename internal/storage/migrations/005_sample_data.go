package migrations

import "gorm.io/gorm"

// migration005Up inserts sample data for testing and development.
// The seeded password for both users is "changeme".
func migration005Up(db *gorm.DB) error {
	usersSQL := `
        INSERT INTO users (id, name, email, password_hash, role) VALUES
            ('550e8400-e29b-41d4-a716-446655440000', 'System Administrator', 'admin@seating.local', '$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy', 'admin'),
            ('550e8400-e29b-41d4-a716-446655440001', 'Dana Levi', 'dana@example.com', '$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy', 'owner')
        ON CONFLICT (email) DO NOTHING
    `

	if err := db.Exec(usersSQL).Error; err != nil {
		return err
	}

	eventSQL := `
        INSERT INTO events (id, name, bride_name, groom_name, venue, owner_id, date, stage) VALUES
            ('660e8400-e29b-41d4-a716-446655440000',
             'Dana & Omer Wedding',
             'Dana', 'Omer',
             'Garden Hall, Tel Aviv',
             '550e8400-e29b-41d4-a716-446655440001',
             '2026-10-15 19:00:00+00',
             'seating')
        ON CONFLICT (id) DO NOTHING
    `

	if err := db.Exec(eventSQL).Error; err != nil {
		return err
	}

	guestsSQL := `
        INSERT INTO guests (id, event_id, name, phone, side, group_name, expected_guests) VALUES
            ('770e8400-e29b-41d4-a716-446655440001', '660e8400-e29b-41d4-a716-446655440000', 'Avi Cohen', '+972501000001', 'bride', 'family', 2),
            ('770e8400-e29b-41d4-a716-446655440002', '660e8400-e29b-41d4-a716-446655440000', 'Noa Mizrahi', '+972501000002', 'bride', 'family', 4),
            ('770e8400-e29b-41d4-a716-446655440003', '660e8400-e29b-41d4-a716-446655440000', 'Gil Peretz', '+972501000003', 'groom', 'friends', 1),
            ('770e8400-e29b-41d4-a716-446655440004', '660e8400-e29b-41d4-a716-446655440000', 'Maya Azulay', '+972501000004', 'groom', 'friends', 2),
            ('770e8400-e29b-41d4-a716-446655440005', '660e8400-e29b-41d4-a716-446655440000', 'Ron Shapiro', '+972501000005', 'both', 'work', 1)
        ON CONFLICT (id) DO NOTHING
    `

	if err := db.Exec(guestsSQL).Error; err != nil {
		return err
	}

	rsvpsSQL := `
        INSERT INTO rsvps (guest_id, status, guest_count) VALUES
            ('770e8400-e29b-41d4-a716-446655440001', 'accepted', 2),
            ('770e8400-e29b-41d4-a716-446655440002', 'accepted', 3),
            ('770e8400-e29b-41d4-a716-446655440003', 'pending', 0),
            ('770e8400-e29b-41d4-a716-446655440004', 'declined', 0)
        ON CONFLICT (guest_id) DO NOTHING
    `

	return db.Exec(rsvpsSQL).Error
}

// migration005Down removes sample data
func migration005Down(db *gorm.DB) error {
	statements := []string{
		"DELETE FROM rsvps WHERE guest_id IN (SELECT id FROM guests WHERE event_id = '660e8400-e29b-41d4-a716-446655440000')",
		"DELETE FROM assignments WHERE event_id = '660e8400-e29b-41d4-a716-446655440000'",
		"DELETE FROM seats WHERE table_id IN (SELECT id FROM tables WHERE event_id = '660e8400-e29b-41d4-a716-446655440000')",
		"DELETE FROM tables WHERE event_id = '660e8400-e29b-41d4-a716-446655440000'",
		"DELETE FROM guests WHERE event_id = '660e8400-e29b-41d4-a716-446655440000'",
		"DELETE FROM events WHERE id = '660e8400-e29b-41d4-a716-446655440000'",
		"DELETE FROM users WHERE email IN ('admin@seating.local', 'dana@example.com')",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
