package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/EpicMandM/hotel-manager/internal/models"
)

// CSVStore keeps the inventory in a comma-separated file with one header row
// and one row per room. Saves truncate and rewrite the file in place, so a
// crash mid-write can leave it corrupt.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) (*CSVStore, error) {
	clean := filepath.Clean(path)
	if dir := filepath.Dir(clean); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}
	return &CSVStore{path: clean}, nil
}

func (s *CSVStore) Path() string {
	return s.path
}

func (s *CSVStore) Close() error {
	return nil
}

func (s *CSVStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *CSVStore) Load() ([]models.Room, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: missing header row", ErrMalformed, s.path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, s.path, err)
	}

	rooms := []models.Room{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, s.path, err)
		}
		line, _ := r.FieldPos(0)
		room, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: line %d: %v", ErrMalformed, s.path, line, err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func parseRecord(record []string) (models.Room, error) {
	if len(record) != len(Columns) {
		return models.Room{}, fmt.Errorf("expected %d columns, got %d", len(Columns), len(record))
	}

	number, err := strconv.Atoi(record[0])
	if err != nil {
		return models.Room{}, fmt.Errorf("RoomNumber: %w", err)
	}
	if number < 1 {
		return models.Room{}, fmt.Errorf("RoomNumber must be positive, got %d", number)
	}

	var flags [3]bool
	for i, column := range Columns[1:4] {
		v, err := strconv.ParseInt(record[i+1], 10, 64)
		if err != nil {
			return models.Room{}, fmt.Errorf("%s: %w", column, err)
		}
		if flags[i], err = decodeFlag(v, column); err != nil {
			return models.Room{}, err
		}
	}

	return models.Room{
		RoomNumber:   number,
		AC:           flags[0],
		DoubleBed:    flags[1],
		Booked:       flags[2],
		CustomerName: record[4],
		CheckIn:      record[5],
		CheckOut:     record[6],
	}, nil
}

func (s *CSVStore) Save(rooms []models.Room) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}

	if err := writeRooms(f, rooms); err != nil {
		if cerr := f.Close(); cerr != nil {
			return errors.Join(err, cerr)
		}
		return err
	}
	return f.Close()
}

func writeRooms(w io.Writer, rooms []models.Room) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, room := range rooms {
		if err := cw.Write([]string{
			strconv.Itoa(room.RoomNumber),
			strconv.Itoa(encodeFlag(room.AC)),
			strconv.Itoa(encodeFlag(room.DoubleBed)),
			strconv.Itoa(encodeFlag(room.Booked)),
			room.CustomerName,
			room.CheckIn,
			room.CheckOut,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
