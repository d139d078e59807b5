package migrations

import "gorm.io/gorm"

// migration001Up creates extensions and custom types
func migration001Up(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return err
	}

	if err := db.Exec(`
        CREATE TYPE event_stage AS ENUM (
            'draft',
            'invitations',
            'seating',
            'final'
        )
    `).Error; err != nil {
		return err
	}

	if err := db.Exec(`
        CREATE TYPE rsvp_status AS ENUM (
            'pending',
            'accepted',
            'declined'
        )
    `).Error; err != nil {
		return err
	}

	if err := db.Exec(`
        CREATE TYPE table_shape AS ENUM (
            'circle',
            'rectangle',
            'square',
            'oval'
        )
    `).Error; err != nil {
		return err
	}

	if err := db.Exec(`
        CREATE TYPE user_role AS ENUM (
            'admin',
            'owner'
        )
    `).Error; err != nil {
		return err
	}

	return nil
}

// migration001Down drops extensions and custom types
func migration001Down(db *gorm.DB) error {
	types := []string{"user_role", "table_shape", "rsvp_status", "event_stage"}

	for _, t := range types {
		if err := db.Exec("DROP TYPE IF EXISTS " + t + " CASCADE").Error; err != nil {
			return err
		}
	}

	// NOTE: We don't drop the UUID extension as it might be used by other applications
	return nil
}
