package service

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/EpicMandM/hotel-manager/internal/logger"
	"github.com/EpicMandM/hotel-manager/internal/models"
	"github.com/EpicMandM/hotel-manager/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeRepo struct {
	rooms   []models.Room
	exists  bool
	saves   int
	loadErr error
	saveErr error
}

func (f *fakeRepo) Exists() (bool, error) { return f.exists, nil }

func (f *fakeRepo) Load() ([]models.Room, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]models.Room(nil), f.rooms...), nil
}

func (f *fakeRepo) Save(rooms []models.Room) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.exists = true
	f.rooms = append([]models.Room(nil), rooms...)
	return nil
}

func (f *fakeRepo) Path() string { return "memory" }
func (f *fakeRepo) Close() error { return nil }

// alternating coin: true, false, true, ...
func alternatingCoin() CoinFunc {
	next := false
	return func() (bool, error) {
		next = !next
		return next, nil
	}
}

// --- helpers ---

func newFreshStore(t *testing.T) (*RoomStore, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{}
	s, err := NewRoomStore(repo, logger.Discard(), Options{Coin: alternatingCoin()})
	require.NoError(t, err)
	return s, repo
}

func newLoadedStore(t *testing.T, rooms []models.Room) (*RoomStore, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{rooms: rooms, exists: true}
	s, err := NewRoomStore(repo, logger.Discard(), Options{})
	require.NoError(t, err)
	return s, repo
}

func mixedRooms() []models.Room {
	return []models.Room{
		{RoomNumber: 1, AC: true, DoubleBed: true},
		{RoomNumber: 2, AC: true, Booked: true, CustomerName: "Jane Doe", CheckIn: "01/05/2024", CheckOut: "03/05/2024"},
		{RoomNumber: 3, DoubleBed: true},
		{RoomNumber: 4, AC: true},
		{RoomNumber: 5},
	}
}

func roomNumbers(rooms []models.Room) []int {
	out := make([]int, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.RoomNumber)
	}
	return out
}

// --- initialization ---

func TestNewRoomStore_ProvisionsFreshInventory(t *testing.T) {
	s, repo := newFreshStore(t)

	rooms := s.ListAll()
	require.Len(t, rooms, 45)
	for i, r := range rooms {
		assert.Equal(t, i+1, r.RoomNumber)
		assert.False(t, r.Booked)
		assert.Empty(t, r.CustomerName)
		assert.Empty(t, r.CheckIn)
		assert.Empty(t, r.CheckOut)
	}
	assert.Equal(t, 1, repo.saves, "fresh inventory must be persisted immediately")
	assert.Equal(t, rooms, repo.rooms)
}

func TestNewRoomStore_CustomRoomCount(t *testing.T) {
	repo := &fakeRepo{}
	s, err := NewRoomStore(repo, nil, Options{RoomCount: 3, Coin: alternatingCoin()})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, []models.Room{
		{RoomNumber: 1, AC: true, DoubleBed: false},
		{RoomNumber: 2, AC: true, DoubleBed: false},
		{RoomNumber: 3, AC: true, DoubleBed: false},
	}, s.ListAll())
}

func TestNewRoomStore_LoadsExisting(t *testing.T) {
	s, repo := newLoadedStore(t, mixedRooms())

	assert.Equal(t, mixedRooms(), s.ListAll())
	assert.Zero(t, repo.saves, "loading must not rewrite the dataset")
}

func TestNewRoomStore_Errors(t *testing.T) {
	t.Run("nil repository", func(t *testing.T) {
		_, err := NewRoomStore(nil, nil, Options{})
		assert.Error(t, err)
	})

	t.Run("load failure propagates", func(t *testing.T) {
		repo := &fakeRepo{exists: true, loadErr: store.ErrMalformed}
		_, err := NewRoomStore(repo, nil, Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrMalformed)
	})

	t.Run("duplicate room numbers", func(t *testing.T) {
		repo := &fakeRepo{exists: true, rooms: []models.Room{{RoomNumber: 1}, {RoomNumber: 1}}}
		_, err := NewRoomStore(repo, nil, Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrMalformed)
		assert.Contains(t, err.Error(), "duplicate room number 1")
	})

	t.Run("initial save failure", func(t *testing.T) {
		repo := &fakeRepo{saveErr: errors.New("disk full")}
		_, err := NewRoomStore(repo, nil, Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("coin failure", func(t *testing.T) {
		coin := func() (bool, error) { return false, errors.New("no entropy") }
		_, err := NewRoomStore(&fakeRepo{}, nil, Options{Coin: coin})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no entropy")
	})
}

// --- queries ---

func TestListAvailable(t *testing.T) {
	s, _ := newLoadedStore(t, mixedRooms())

	tests := []struct {
		name   string
		ac     *bool
		double *bool
		want   []int
	}{
		{"no constraint", nil, nil, []int{1, 3, 4, 5}},
		{"ac only", Want(true), nil, []int{1, 4}},
		{"no ac", Want(false), nil, []int{3, 5}},
		{"double bed", nil, Want(true), []int{1, 3}},
		{"single bed without ac", Want(false), Want(false), []int{5}},
		{"ac and double", Want(true), Want(true), []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roomNumbers(s.ListAvailable(tt.ac, tt.double)))
		})
	}
}

func TestListAvailable_ACFilterMatchesDefinition(t *testing.T) {
	calls := 0
	coin := func() (bool, error) {
		calls++
		return calls%3 != 0, nil
	}
	s, err := NewRoomStore(&fakeRepo{}, nil, Options{Coin: coin})
	require.NoError(t, err)
	for _, n := range []int{1, 2, 10, 33} {
		ok, err := s.Book(n, "Guest", "01/01/2025", "02/01/2025")
		require.NoError(t, err)
		require.True(t, ok)
	}

	var want []int
	for _, r := range s.ListAll() {
		if !r.Booked && r.AC {
			want = append(want, r.RoomNumber)
		}
	}
	got := s.ListAvailable(Want(true), nil)
	assert.Equal(t, want, roomNumbers(got))
	for _, r := range got {
		assert.False(t, r.Booked)
	}
}

func TestListAvailable_Empty(t *testing.T) {
	s, _ := newLoadedStore(t, []models.Room{{RoomNumber: 1, Booked: true, CustomerName: "A", CheckIn: "x", CheckOut: "y"}})
	got := s.ListAvailable(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListBooked(t *testing.T) {
	s, _ := newLoadedStore(t, mixedRooms())
	assert.Equal(t, []int{2}, roomNumbers(s.ListBooked()))
}

func TestListAll_ReturnsCopies(t *testing.T) {
	s, _ := newLoadedStore(t, mixedRooms())
	rooms := s.ListAll()
	rooms[0].Booked = true
	rooms[0].CustomerName = "Mallory"

	room, ok := s.Room(1)
	require.True(t, ok)
	assert.False(t, room.Booked)
	assert.Empty(t, room.CustomerName)
}

func TestRoom_Lookup(t *testing.T) {
	s, _ := newLoadedStore(t, []models.Room{{RoomNumber: 101}, {RoomNumber: 205, AC: true}})

	room, ok := s.Room(205)
	require.True(t, ok)
	assert.True(t, room.AC)

	_, ok = s.Room(2)
	assert.False(t, ok, "numbers are keys, not positions")
}

// --- book ---

func TestBook_Success(t *testing.T) {
	s, repo := newFreshStore(t)
	saves := repo.saves

	ok, err := s.Book(3, "Alice", "01/01/2025", "05/01/2025")
	require.NoError(t, err)
	assert.True(t, ok)

	room, found := s.Room(3)
	require.True(t, found)
	assert.True(t, room.Booked)
	assert.Equal(t, "Alice", room.CustomerName)
	assert.Equal(t, "01/01/2025", room.CheckIn)
	assert.Equal(t, "05/01/2025", room.CheckOut)

	assert.Equal(t, saves+1, repo.saves)
	assert.Equal(t, s.ListAll(), repo.rooms)
}

func TestBook_AlreadyBooked(t *testing.T) {
	s, repo := newFreshStore(t)
	ok, err := s.Book(3, "Alice", "01/01/2025", "05/01/2025")
	require.NoError(t, err)
	require.True(t, ok)
	saves := repo.saves

	ok, err = s.Book(3, "Bob", "02/02/2025", "03/02/2025")
	require.NoError(t, err)
	assert.False(t, ok)

	room, _ := s.Room(3)
	assert.Equal(t, "Alice", room.CustomerName)
	assert.Equal(t, saves, repo.saves)
}

func TestBook_OutOfRange(t *testing.T) {
	for _, n := range []int{999, 0, -1, 46} {
		s, repo := newFreshStore(t)
		saves := repo.saves
		before := s.ListAll()

		ok, err := s.Book(n, "Bob", "01/01/2025", "02/01/2025")
		require.NoError(t, err)
		assert.False(t, ok, "room %d", n)
		assert.Equal(t, saves, repo.saves, "no write for room %d", n)
		assert.Equal(t, before, s.ListAll())
	}
}

func TestBook_StoresStringsVerbatim(t *testing.T) {
	s, _ := newFreshStore(t)
	ok, err := s.Book(1, "  Ünïcødé, Guest ", "not a date", "2025-13-45")
	require.NoError(t, err)
	require.True(t, ok)

	room, _ := s.Room(1)
	assert.Equal(t, "  Ünïcødé, Guest ", room.CustomerName)
	assert.Equal(t, "not a date", room.CheckIn)
	assert.Equal(t, "2025-13-45", room.CheckOut)
}

func TestBook_PersistFailureRollsBack(t *testing.T) {
	s, repo := newFreshStore(t)
	repo.saveErr = errors.New("permission denied")

	ok, err := s.Book(3, "Alice", "01/01/2025", "05/01/2025")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "permission denied")

	room, _ := s.Room(3)
	assert.False(t, room.Booked)
	assert.Empty(t, room.CustomerName)
}

// --- checkout ---

func TestCheckOut_Success(t *testing.T) {
	s, repo := newFreshStore(t)
	ok, err := s.Book(3, "Alice", "01/01/2025", "05/01/2025")
	require.NoError(t, err)
	require.True(t, ok)
	saves := repo.saves

	checkout, ok, err := s.CheckOut(3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.Checkout{RoomNumber: 3, Customer: "Alice", Period: "01/01/2025 to 05/01/2025"}, checkout)

	room, _ := s.Room(3)
	assert.False(t, room.Booked)
	assert.Empty(t, room.CustomerName)
	assert.Empty(t, room.CheckIn)
	assert.Empty(t, room.CheckOut)
	assert.Equal(t, saves+1, repo.saves)
	assert.Equal(t, s.ListAll(), repo.rooms)
}

func TestCheckOut_Twice(t *testing.T) {
	s, repo := newFreshStore(t)
	_, err := s.Book(7, "Carol", "10/10/2025", "11/10/2025")
	require.NoError(t, err)

	_, ok, err := s.CheckOut(7)
	require.NoError(t, err)
	require.True(t, ok)
	saves := repo.saves
	before := s.ListAll()

	checkout, ok, err := s.CheckOut(7)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, models.Checkout{}, checkout)
	assert.Equal(t, saves, repo.saves)
	assert.Equal(t, before, s.ListAll())
}

func TestCheckOut_UnknownRoom(t *testing.T) {
	s, repo := newFreshStore(t)
	saves := repo.saves

	_, ok, err := s.CheckOut(999)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, saves, repo.saves)
}

func TestCheckOut_PersistFailureRollsBack(t *testing.T) {
	s, repo := newFreshStore(t)
	_, err := s.Book(3, "Alice", "01/01/2025", "05/01/2025")
	require.NoError(t, err)
	repo.saveErr = errors.New("disk full")

	_, ok, err := s.CheckOut(3)
	require.Error(t, err)
	assert.False(t, ok)

	room, _ := s.Room(3)
	assert.True(t, room.Booked)
	assert.Equal(t, "Alice", room.CustomerName)
}

func TestBookAfterCheckOut(t *testing.T) {
	s, _ := newFreshStore(t)
	_, err := s.Book(5, "Alice", "01/01/2025", "05/01/2025")
	require.NoError(t, err)
	_, _, err = s.CheckOut(5)
	require.NoError(t, err)

	ok, err := s.Book(5, "Bob", "01/01/2025", "05/01/2025")
	require.NoError(t, err)
	assert.True(t, ok)
}

// --- logging and persistence integration ---

func TestRoomStore_LogsMutations(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewRoomStore(&fakeRepo{}, logger.NewWithWriter(&buf), Options{RoomCount: 4})
	require.NoError(t, err)

	_, err = s.Book(2, "Alice", "01/01/2025", "05/01/2025")
	require.NoError(t, err)
	_, err = s.Book(2, "Bob", "01/01/2025", "05/01/2025")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "MESSAGE=Rooms provisioned")
	assert.Contains(t, out, "COUNT=4")
	assert.Contains(t, out, "MESSAGE=Room booked")
	assert.Contains(t, out, "CUSTOMER=Alice")
	assert.Contains(t, out, "REASON=already_booked")
}

func TestRoomStore_CSVRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotel_rooms.csv")
	repo, err := store.NewCSVStore(path)
	require.NoError(t, err)

	s, err := NewRoomStore(repo, nil, Options{})
	require.NoError(t, err)
	ok, err := s.Book(3, "Alice", "01/01/2025", "05/01/2025")
	require.NoError(t, err)
	require.True(t, ok)

	reopened, err := NewRoomStore(repo, nil, Options{RoomCount: 10})
	require.NoError(t, err)
	assert.Equal(t, s.ListAll(), reopened.ListAll())
	assert.Equal(t, 45, reopened.Count(), "stored count wins over provisioning options")
}
