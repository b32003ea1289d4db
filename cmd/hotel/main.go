package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/EpicMandM/hotel-manager/internal/app"
	"github.com/EpicMandM/hotel-manager/internal/config"
	"github.com/EpicMandM/hotel-manager/internal/frontdesk"
	"github.com/EpicMandM/hotel-manager/internal/logger"
	"github.com/spf13/cobra"
)

type options struct {
	envFile    string
	configPath string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "hotel",
		Short:         "Hotel room inventory and bookings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional .env file with HOTEL_* settings")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", getEnvOrDefault("HOTEL_CONFIG_PATH", "./hotel.toml"), "hotel TOML config")

	cmd.AddCommand(
		roomsCmd(opts),
		availableCmd(opts),
		findCmd(opts),
		bookCmd(opts),
		bookedCmd(opts),
		checkoutCmd(opts),
	)
	return cmd
}

func roomsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List all rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDesk(cmd, opts, func(d *frontdesk.Desk) error {
				return d.ShowAll()
			})
		},
	}
}

func availableCmd(opts *options) *cobra.Command {
	var ac, bed string
	cmd := &cobra.Command{
		Use:   "available",
		Short: "List available rooms, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acChoice, err := frontdesk.ParseChoice(ac)
			if err != nil {
				return fmt.Errorf("--ac: %w", err)
			}
			bedChoice, err := frontdesk.ParseChoice(bed)
			if err != nil {
				return fmt.Errorf("--double-bed: %w", err)
			}
			return withDesk(cmd, opts, func(d *frontdesk.Desk) error {
				return d.ShowAvailable(acChoice, bedChoice)
			})
		},
	}
	cmd.Flags().StringVar(&ac, "ac", "any", "AC room? any, yes or no")
	cmd.Flags().StringVar(&bed, "double-bed", "any", "double bed? any, yes or no")
	return cmd
}

func findCmd(opts *options) *cobra.Command {
	var ac, bed bool
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find rooms to book by AC and bed type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDesk(cmd, opts, func(d *frontdesk.Desk) error {
				_, err := d.FindForBooking(ac, bed)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&ac, "ac", true, "AC room")
	cmd.Flags().BoolVar(&bed, "double-bed", true, "double bed")
	return cmd
}

func bookCmd(opts *options) *cobra.Command {
	var req frontdesk.BookingRequest
	cmd := &cobra.Command{
		Use:   "book ROOM",
		Short: "Book a room for a guest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := parseRoom(args[0])
			if err != nil {
				return err
			}
			req.Room = room
			return withDesk(cmd, opts, func(d *frontdesk.Desk) error {
				return d.Book(req)
			})
		},
	}
	cmd.Flags().StringVar(&req.Customer, "customer", "", "customer name")
	cmd.Flags().StringVar(&req.CheckIn, "check-in", "", "check-in date (DD/MM/YYYY)")
	cmd.Flags().StringVar(&req.CheckOut, "check-out", "", "check-out date (DD/MM/YYYY)")
	return cmd
}

func bookedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "booked",
		Short: "List booked rooms that can be checked out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDesk(cmd, opts, func(d *frontdesk.Desk) error {
				_, err := d.ListBooked()
				return err
			})
		},
	}
}

func checkoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout ROOM",
		Short: "Check a guest out of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := parseRoom(args[0])
			if err != nil {
				return err
			}
			return withDesk(cmd, opts, func(d *frontdesk.Desk) error {
				_, err := d.CheckOut(room)
				return err
			})
		},
	}
}

// withDesk loads configuration, opens the room store and runs fn against a
// front desk writing to the command's output.
func withDesk(cmd *cobra.Command, opts *options, fn func(*frontdesk.Desk) error) error {
	log := logger.NewWithWriter(cmd.ErrOrStderr())

	cfg, err := config.LoadWithFile(opts.envFile)
	if err != nil {
		log.Error("Failed to load infrastructure config", logger.Error(err), logger.Path(opts.envFile))
		return err
	}
	log.SetDebug(cfg.Verbose)

	hotelCfg, err := config.LoadHotelConfig(opts.configPath)
	if err != nil {
		log.Error("Failed to load hotel config", logger.Error(err), logger.Path(opts.configPath))
		return err
	}

	application := app.New(cfg, hotelCfg, log, cmd.OutOrStdout())
	if err := application.Initialize(); err != nil {
		log.Error("Failed to initialize rooms", logger.Error(err), logger.Backend(cfg.Backend), logger.Path(cfg.DataFile))
		return err
	}
	defer closeApp(application, log)

	desk, err := application.Desk()
	if err != nil {
		return err
	}
	return fn(desk)
}

func closeApp(a *app.App, log *logger.Logger) {
	if err := a.Close(); err != nil {
		log.Error("Failed to close store", logger.Error(err))
	}
}

func parseRoom(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid room number %q", s)
	}
	return n, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
