package service

import (
	"errors"
	"fmt"

	"github.com/EpicMandM/hotel-manager/internal/config"
	"github.com/EpicMandM/hotel-manager/internal/logger"
	"github.com/EpicMandM/hotel-manager/internal/models"
	"github.com/EpicMandM/hotel-manager/internal/store"
)

// Options control provisioning of a fresh inventory. They are ignored when a
// persisted dataset already exists.
type Options struct {
	RoomCount int
	Coin      CoinFunc
}

// RoomStore owns the room inventory. Rooms are keyed by number and kept in
// storage order. Every successful mutation rewrites the whole dataset through
// the repository before returning.
type RoomStore struct {
	logger *logger.Logger
	repo   store.Store
	order  []int
	rooms  map[int]*models.Room
}

// NewRoomStore loads the persisted inventory, or provisions and saves a fresh
// one when none exists.
func NewRoomStore(repo store.Store, log *logger.Logger, opts Options) (*RoomStore, error) {
	if repo == nil {
		return nil, errors.New("room repository is required")
	}
	if log == nil {
		log = logger.Discard()
	}
	if opts.RoomCount == 0 {
		opts.RoomCount = config.DefaultRoomCount
	}

	s := &RoomStore{logger: log, repo: repo}

	exists, err := repo.Exists()
	if err != nil {
		return nil, fmt.Errorf("failed to check persisted rooms: %w", err)
	}

	if exists {
		rooms, err := repo.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load rooms: %w", err)
		}
		if err := s.index(rooms); err != nil {
			return nil, err
		}
		log.Info("Rooms loaded", logger.Action("startup"), logger.Status("loaded"), logger.Count(len(rooms)), logger.Path(repo.Path()))
		return s, nil
	}

	rooms, err := ProvisionRooms(opts.RoomCount, opts.Coin)
	if err != nil {
		return nil, fmt.Errorf("failed to provision rooms: %w", err)
	}
	if err := s.index(rooms); err != nil {
		return nil, err
	}
	if err := repo.Save(rooms); err != nil {
		return nil, fmt.Errorf("failed to save provisioned rooms: %w", err)
	}
	log.Info("Rooms provisioned", logger.Action("startup"), logger.Status("provisioned"), logger.Count(len(rooms)), logger.Path(repo.Path()))
	return s, nil
}

func (s *RoomStore) index(rooms []models.Room) error {
	s.order = make([]int, 0, len(rooms))
	s.rooms = make(map[int]*models.Room, len(rooms))
	for i := range rooms {
		room := rooms[i]
		if _, dup := s.rooms[room.RoomNumber]; dup {
			return fmt.Errorf("%w: duplicate room number %d", store.ErrMalformed, room.RoomNumber)
		}
		s.rooms[room.RoomNumber] = &room
		s.order = append(s.order, room.RoomNumber)
	}
	return nil
}

// Count returns the number of rooms in the inventory.
func (s *RoomStore) Count() int {
	return len(s.order)
}

// Room returns a copy of the room with the given number.
func (s *RoomStore) Room(roomNumber int) (models.Room, bool) {
	room, ok := s.rooms[roomNumber]
	if !ok {
		return models.Room{}, false
	}
	return *room, true
}

// ListAll returns copies of every room in storage order.
func (s *RoomStore) ListAll() []models.Room {
	return s.collect(func(models.Room) bool { return true })
}

// ListAvailable returns unbooked rooms. A nil filter places no constraint;
// a non-nil filter must match exactly.
func (s *RoomStore) ListAvailable(wantAC, wantDoubleBed *bool) []models.Room {
	return s.collect(func(r models.Room) bool {
		if r.Booked {
			return false
		}
		if wantAC != nil && r.AC != *wantAC {
			return false
		}
		if wantDoubleBed != nil && r.DoubleBed != *wantDoubleBed {
			return false
		}
		return true
	})
}

// ListBooked returns the rooms currently holding a booking.
func (s *RoomStore) ListBooked() []models.Room {
	return s.collect(func(r models.Room) bool { return r.Booked })
}

func (s *RoomStore) collect(keep func(models.Room) bool) []models.Room {
	out := []models.Room{}
	for _, n := range s.order {
		if room := *s.rooms[n]; keep(room) {
			out = append(out, room)
		}
	}
	return out
}

// Book assigns the room to a customer. It returns false without touching
// state when the room does not exist or is already booked. The strings are
// stored as given.
func (s *RoomStore) Book(roomNumber int, customerName, checkIn, checkOut string) (bool, error) {
	room, ok := s.rooms[roomNumber]
	if !ok {
		s.logger.Warn("Booking rejected", logger.Action("book"), logger.Room(roomNumber), logger.Reason("unknown_room"))
		return false, nil
	}
	if room.Booked {
		s.logger.Warn("Booking rejected", logger.Action("book"), logger.Room(roomNumber), logger.Reason("already_booked"))
		return false, nil
	}

	prev := *room
	room.Booked = true
	room.CustomerName = customerName
	room.CheckIn = checkIn
	room.CheckOut = checkOut

	if err := s.persist(); err != nil {
		*room = prev
		s.logger.Error("Failed to persist booking", logger.Action("book"), logger.Room(roomNumber), logger.Error(err))
		return false, fmt.Errorf("failed to persist booking for room %d: %w", roomNumber, err)
	}

	s.logger.Info("Room booked",
		logger.Action("book"),
		logger.Status("success"),
		logger.Room(roomNumber),
		logger.Customer(customerName),
		logger.Period(room.Period()))
	return true, nil
}

// CheckOut clears the booking on a room and returns what it held. It returns
// false without touching state when the room does not exist or is not booked.
func (s *RoomStore) CheckOut(roomNumber int) (models.Checkout, bool, error) {
	room, ok := s.rooms[roomNumber]
	if !ok {
		s.logger.Warn("Checkout rejected", logger.Action("checkout"), logger.Room(roomNumber), logger.Reason("unknown_room"))
		return models.Checkout{}, false, nil
	}
	if !room.Booked {
		s.logger.Warn("Checkout rejected", logger.Action("checkout"), logger.Room(roomNumber), logger.Reason("not_booked"))
		return models.Checkout{}, false, nil
	}

	prev := *room
	checkout := models.Checkout{
		RoomNumber: room.RoomNumber,
		Customer:   room.CustomerName,
		Period:     room.Period(),
	}
	room.Booked = false
	room.CustomerName = ""
	room.CheckIn = ""
	room.CheckOut = ""

	if err := s.persist(); err != nil {
		*room = prev
		s.logger.Error("Failed to persist checkout", logger.Action("checkout"), logger.Room(roomNumber), logger.Error(err))
		return models.Checkout{}, false, fmt.Errorf("failed to persist checkout for room %d: %w", roomNumber, err)
	}

	s.logger.Info("Room checked out",
		logger.Action("checkout"),
		logger.Status("success"),
		logger.Room(roomNumber),
		logger.Customer(checkout.Customer),
		logger.Period(checkout.Period))
	return checkout, true, nil
}

func (s *RoomStore) persist() error {
	rooms := s.ListAll()
	if err := s.repo.Save(rooms); err != nil {
		return err
	}
	s.logger.Debug("Rooms saved", logger.Count(len(rooms)), logger.Path(s.repo.Path()))
	return nil
}

// Want returns a pointer to v, for use as a ListAvailable filter.
func Want(v bool) *bool {
	return &v
}
