package migrations

import "gorm.io/gorm"

// migration003Up creates performance indexes
func migration003Up(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",

		"CREATE INDEX IF NOT EXISTS idx_events_owner ON events(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_events_stage ON events(stage)",
		"CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)",

		"CREATE INDEX IF NOT EXISTS idx_guests_event ON guests(event_id)",
		"CREATE INDEX IF NOT EXISTS idx_guests_event_group ON guests(event_id, group_name)",
		"CREATE INDEX IF NOT EXISTS idx_guests_event_side ON guests(event_id, side)",

		"CREATE INDEX IF NOT EXISTS idx_rsvps_guest ON rsvps(guest_id)",
		"CREATE INDEX IF NOT EXISTS idx_rsvps_status ON rsvps(status)",

		"CREATE INDEX IF NOT EXISTS idx_tables_event ON tables(event_id)",
		"CREATE INDEX IF NOT EXISTS idx_tables_event_number ON tables(event_id, number)",

		"CREATE INDEX IF NOT EXISTS idx_seats_table ON seats(table_id)",
		"CREATE INDEX IF NOT EXISTS idx_seats_guest ON seats(guest_id)",

		"CREATE INDEX IF NOT EXISTS idx_assignments_event ON assignments(event_id)",
		"CREATE INDEX IF NOT EXISTS idx_assignments_table ON assignments(table_id)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration003Down drops performance indexes
func migration003Down(db *gorm.DB) error {
	indexes := []string{
		"idx_users_email",
		"idx_events_owner",
		"idx_events_stage",
		"idx_events_date",
		"idx_guests_event",
		"idx_guests_event_group",
		"idx_guests_event_side",
		"idx_rsvps_guest",
		"idx_rsvps_status",
		"idx_tables_event",
		"idx_tables_event_number",
		"idx_seats_table",
		"idx_seats_guest",
		"idx_assignments_event",
		"idx_assignments_table",
	}

	for _, index := range indexes {
		if err := db.Exec("DROP INDEX IF EXISTS " + index).Error; err != nil {
			return err
		}
	}

	return nil
}
