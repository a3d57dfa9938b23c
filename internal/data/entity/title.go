package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Title struct {
	BaseNoDelete
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
}

// ValidateYear rejects years below zero and years in the future.
func ValidateYear(year int) error {
	if year < 0 {
		return fmt.Errorf("year %d can not be less than zero", year)
	}
	if current := time.Now().Year(); year > current {
		return fmt.Errorf("year %d can not be more than current year %d", year, current)
	}
	return nil
}
