package types

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UUIDArray maps a postgres uuid[] column. Order is preserved both ways and
// an empty array is stored as '{}' rather than NULL.
type UUIDArray []uuid.UUID

func (u UUIDArray) Value() (driver.Value, error) {
	strs := make([]string, len(u))
	for i, id := range u {
		strs[i] = id.String()
	}
	return pq.Array(strs).Value()
}

func (u *UUIDArray) Scan(value interface{}) error {
	if value == nil {
		*u = UUIDArray{}
		return nil
	}

	var strs []string
	if err := pq.Array(&strs).Scan(value); err != nil {
		return fmt.Errorf("failed to scan uuid array: %w", err)
	}

	ids := make(UUIDArray, 0, len(strs))
	for _, str := range strs {
		id, err := uuid.Parse(strings.TrimSpace(str))
		if err != nil {
			return fmt.Errorf("failed to parse uuid %q: %w", str, err)
		}
		ids = append(ids, id)
	}
	*u = ids
	return nil
}

// Contains reports whether id is in the array.
func (u UUIDArray) Contains(id uuid.UUID) bool {
	for _, v := range u {
		if v == id {
			return true
		}
	}
	return false
}
