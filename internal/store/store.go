package store

import (
	"errors"
	"fmt"

	"github.com/EpicMandM/hotel-manager/internal/models"
)

// ErrMalformed marks persisted room data that cannot be parsed.
var ErrMalformed = errors.New("malformed room data")

// Store persists the full room inventory. Every Save replaces what was
// stored before; there is no incremental persistence.
type Store interface {
	// Exists reports whether a persisted dataset is present.
	Exists() (bool, error)
	Load() ([]models.Room, error)
	Save(rooms []models.Room) error
	Path() string

	Close() error
}

// Columns is the header row of the flat room file.
var Columns = []string{
	"RoomNumber", "AC", "DoubleBed", "Booked",
	"CustomerName", "CheckInDate", "CheckOutDate",
}

func encodeFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func decodeFlag(v int64, column string) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("%s must be 0 or 1, got %d", column, v)
}
