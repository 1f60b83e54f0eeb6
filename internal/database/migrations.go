package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Applicant pipeline lookups
		{"track_applicants", "idx_track_applicants_member_id", "member_id"},
		{"track_applicants", "idx_track_applicants_status", "status"},

		// Membership set lookups
		{"track_members", "idx_track_members_member_id", "member_id"},

		// Course aggregate lookups
		{"course_tracks", "idx_course_tracks_track_id", "track_id"},
		{"submissions", "idx_submissions_task_member", "task_id,member_id"},

		// Inbox and expiry scans
		{"messages", "idx_messages_member_status", "member_id,status"},
		{"announcements", "idx_announcements_track_expires", "track_id,expires_at"},

		// Leaderboard ordering
		{"members", "idx_members_rate", "rate"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
