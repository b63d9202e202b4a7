package course

import (
	"encoding/csv"
	"fmt"
	"io"

	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
)

// WriteRoster writes one id,name,email line per student.
func WriteRoster(w io.Writer, students []domainUser.User) error {
	cw := csv.NewWriter(w)
	for _, s := range students {
		if err := cw.Write([]string{s.ID.String(), s.Name, s.Email}); err != nil {
			return fmt.Errorf("failed to write roster line: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
