package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsManager_PendingSortsAndSkipsApplied(t *testing.T) {
	saved, savedOrder := migrationsRegistry, migrationsOrder
	t.Cleanup(func() { migrationsRegistry, migrationsOrder = saved, savedOrder })
	migrationsRegistry = map[string]Migration{}
	migrationsOrder = nil

	RegisterMigration(Migration{ID: "20250302_b"})
	RegisterMigration(Migration{ID: "20250301_a"})
	RegisterMigration(Migration{ID: "20250303_c"})

	m := NewMigrationsManager(nil)
	assert.Equal(t, []string{"20250301_a", "20250302_b", "20250303_c"}, m.Pending(nil))
	assert.Equal(t, []string{"20250303_c"}, m.Pending(map[string]struct{}{
		"20250301_a": {}, "20250302_b": {},
	}))
}

func TestRegisterMigration_PanicsOnDuplicate(t *testing.T) {
	saved, savedOrder := migrationsRegistry, migrationsOrder
	t.Cleanup(func() { migrationsRegistry, migrationsOrder = saved, savedOrder })
	migrationsRegistry = map[string]Migration{}
	migrationsOrder = nil

	RegisterMigration(Migration{ID: "x"})
	assert.Panics(t, func() { RegisterMigration(Migration{ID: "x"}) })
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "tarpaulin", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=tarpaulin sslmode=disable", cfg.DSN())
}
