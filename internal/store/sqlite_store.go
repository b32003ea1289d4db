package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/EpicMandM/hotel-manager/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the inventory in a single rooms table. Save replaces all
// rows in one transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dbPath, err := resolveDBPath(path)
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, err
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

func resolveDBPath(path string) (string, error) {
	clean := filepath.Clean(path)
	if strings.HasSuffix(clean, ".db") {
		if err := os.MkdirAll(filepath.Dir(clean), 0o750); err != nil {
			return "", err
		}
		return clean, nil
	}
	if err := os.MkdirAll(clean, 0o750); err != nil {
		return "", err
	}
	return filepath.Join(clean, "hotel_rooms.db"), nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			room_number   INTEGER PRIMARY KEY,
			ac            INTEGER NOT NULL,
			double_bed    INTEGER NOT NULL,
			booked        INTEGER NOT NULL,
			customer_name TEXT NOT NULL DEFAULT '',
			check_in      TEXT NOT NULL DEFAULT '',
			check_out     TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Exists() (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM rooms`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) Load() ([]models.Room, error) {
	rows, err := s.db.Query(`SELECT room_number, ac, double_bed, booked, customer_name, check_in, check_out
		FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	rooms := []models.Room{}
	for rows.Next() {
		var (
			room            models.Room
			ac, bed, booked int64
		)
		if err := rows.Scan(&room.RoomNumber, &ac, &bed, &booked, &room.CustomerName, &room.CheckIn, &room.CheckOut); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if err := decodeRow(&room, ac, bed, booked); err != nil {
			return nil, fmt.Errorf("%w: room %d: %v", ErrMalformed, room.RoomNumber, err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func decodeRow(room *models.Room, ac, bed, booked int64) error {
	if room.RoomNumber < 1 {
		return fmt.Errorf("RoomNumber must be positive, got %d", room.RoomNumber)
	}
	var err error
	if room.AC, err = decodeFlag(ac, "AC"); err != nil {
		return err
	}
	if room.DoubleBed, err = decodeFlag(bed, "DoubleBed"); err != nil {
		return err
	}
	if room.Booked, err = decodeFlag(booked, "Booked"); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) Save(rooms []models.Room) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM rooms`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO rooms (room_number, ac, double_bed, booked, customer_name, check_in, check_out)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, room := range rooms {
		if _, err := stmt.Exec(room.RoomNumber, encodeFlag(room.AC), encodeFlag(room.DoubleBed), encodeFlag(room.Booked),
			room.CustomerName, room.CheckIn, room.CheckOut); err != nil {
			return fmt.Errorf("save room %d: %w", room.RoomNumber, err)
		}
	}
	return tx.Commit()
}
