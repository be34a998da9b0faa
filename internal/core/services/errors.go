package services

import (
	"errors"

	"susu-dashboard/internal/adapters/backend"
)

// fatal keeps only the errors a caller must not swallow
func fatal(err error) error {
	if errors.Is(err, backend.ErrUnauthorized) {
		return err
	}
	return nil
}
