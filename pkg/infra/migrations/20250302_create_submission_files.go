package migrations

import (
	"github.com/tarpaulin/tarpaulin/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250302_create_submission_files",
		Name: "Create submission_files table for the postgres blob backend",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS submission_files (
					id            UUID PRIMARY KEY,
					filename      TEXT NOT NULL,
					content_type  TEXT NOT NULL,
					length        BIGINT NOT NULL,
					uploaded_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					assignment_id UUID NOT NULL,
					student_id    UUID NOT NULL,
					timestamp     TIMESTAMPTZ NOT NULL,
					grade         DOUBLE PRECISION,
					data          BYTEA NOT NULL
				);
			`).Error; err != nil {
				return err
			}

			// no foreign key: files outlive a deleted assignment until reconciled
			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_submission_files_assignment_student
				ON submission_files (assignment_id, student_id);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS submission_files;`).Error
		},
	})
}
