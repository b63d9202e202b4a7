package migrations

import (
	"github.com/tarpaulin/tarpaulin/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250301_initial_schema",
		Name: "Create users, courses and assignments tables",

		Up: func(db *gorm.DB) error {
			statements := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id         UUID PRIMARY KEY,
					name       TEXT NOT NULL,
					email      TEXT NOT NULL,
					password   TEXT NOT NULL,
					role       TEXT NOT NULL CHECK (role IN ('admin', 'instructor', 'student')),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);`,
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email);`,
				`CREATE TABLE IF NOT EXISTS courses (
					id            UUID PRIMARY KEY,
					subject       TEXT NOT NULL,
					number        TEXT NOT NULL,
					title         TEXT NOT NULL,
					term          TEXT NOT NULL,
					instructor_id UUID NOT NULL REFERENCES users(id),
					students      UUID[] NOT NULL DEFAULT '{}',
					created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);`,
				`CREATE INDEX IF NOT EXISTS idx_courses_instructor_id ON courses (instructor_id);`,
				`CREATE INDEX IF NOT EXISTS idx_courses_students ON courses USING GIN (students);`,
				`CREATE TABLE IF NOT EXISTS assignments (
					id          UUID PRIMARY KEY,
					course_id   UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
					title       TEXT NOT NULL,
					points      INTEGER NOT NULL DEFAULT 0,
					due         TIMESTAMPTZ NOT NULL,
					submissions UUID[] NOT NULL DEFAULT '{}',
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);`,
				`CREATE INDEX IF NOT EXISTS idx_assignments_course_id ON assignments (course_id);`,
			}
			for _, stmt := range statements {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS assignments, courses, users;`).Error
		},
	})
}
