package app

import (
	"fmt"
	"io"

	"github.com/EpicMandM/hotel-manager/internal/config"
	"github.com/EpicMandM/hotel-manager/internal/frontdesk"
	"github.com/EpicMandM/hotel-manager/internal/logger"
	"github.com/EpicMandM/hotel-manager/internal/service"
	"github.com/EpicMandM/hotel-manager/internal/store"
)

// App owns the single room store for the process and hands it to the front
// desk.
type App struct {
	config *config.Config
	hotel  *config.HotelConfig
	logger *logger.Logger
	output io.Writer

	repo  store.Store
	rooms *service.RoomStore
}

func New(cfg *config.Config, hotel *config.HotelConfig, log *logger.Logger, output io.Writer) *App {
	if hotel == nil {
		hotel = config.DefaultHotelConfig()
	}
	if log == nil {
		log = logger.Discard()
	}
	if output == nil {
		output = io.Discard
	}
	return &App{
		config: cfg,
		hotel:  hotel,
		logger: log,
		output: output,
	}
}

// Initialize opens the configured repository and loads or provisions rooms.
func (a *App) Initialize() error {
	repo, err := openStore(a.config)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", a.config.Backend, err)
	}
	a.logger.Debug("Store opened", logger.Backend(a.config.Backend), logger.Path(repo.Path()))

	rooms, err := service.NewRoomStore(repo, a.logger, service.Options{
		RoomCount: a.hotel.Provisioning.RoomCount,
	})
	if err != nil {
		if cerr := repo.Close(); cerr != nil {
			a.logger.Error("Failed to close store", logger.Error(cerr))
		}
		return err
	}
	a.repo = repo
	a.rooms = rooms
	return nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteStore(cfg.DataFile)
	case config.BackendCSV, "":
		return store.NewCSVStore(cfg.DataFile)
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// Rooms returns the room store, or nil before Initialize.
func (a *App) Rooms() *service.RoomStore {
	return a.rooms
}

// Desk returns a front desk bound to the room store.
func (a *App) Desk() (*frontdesk.Desk, error) {
	if a.rooms == nil {
		return nil, fmt.Errorf("rooms not initialized")
	}
	return &frontdesk.Desk{
		Logger: a.logger,
		Rooms:  a.rooms,
		Out:    a.output,
	}, nil
}

func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	if err := a.repo.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	a.repo = nil
	return nil
}
