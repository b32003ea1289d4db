// Package frontdesk is the presentation layer over the room inventory. It
// validates user input, calls into the room store and renders results and
// feedback messages for a terminal.
package frontdesk

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/EpicMandM/hotel-manager/internal/logger"
	"github.com/EpicMandM/hotel-manager/internal/models"
	"github.com/EpicMandM/hotel-manager/internal/service"
)

// DateLayout is the DD/MM/YYYY format required for check-in and check-out.
const DateLayout = "02/01/2006"

var (
	ErrMissingFields   = errors.New("All fields are required!")
	ErrInvalidDate     = errors.New("Invalid date format. Please use DD/MM/YYYY")
	ErrBookingFailed   = errors.New("Booking failed. Room may be already booked.")
	ErrCheckoutFailed  = errors.New("Check-out failed. Room may not be booked.")
	ErrNoBookings      = errors.New("There are no booked rooms to check out.")
	ErrNoMatchingRooms = errors.New("No matching rooms available.")
	ErrInvalidChoice   = errors.New("choice must be one of any, yes, no")
)

// Desk renders room state and forwards user actions to the room store.
type Desk struct {
	Logger *logger.Logger
	Rooms  service.RoomManager
	Out    io.Writer
}

// BookingRequest holds the fields collected from the guest.
type BookingRequest struct {
	Room     int
	Customer string
	CheckIn  string
	CheckOut string
}

// ShowAll prints every room followed by a status line.
func (d *Desk) ShowAll() error {
	rooms := d.Rooms.ListAll()
	if err := d.renderRooms(rooms); err != nil {
		return err
	}
	return d.status("Displaying all %d rooms", len(rooms))
}

// ShowAvailable prints the unbooked rooms matching the given choices.
func (d *Desk) ShowAvailable(ac, bed Choice) error {
	rooms := d.Rooms.ListAvailable(ac.Want(), bed.Want())
	if err := d.renderRooms(rooms); err != nil {
		return err
	}
	return d.status("Found %d available rooms matching your criteria", len(rooms))
}

// FindForBooking lists the room numbers a guest can pick from. Unlike
// ShowAvailable both attributes are required.
func (d *Desk) FindForBooking(ac, bed bool) ([]int, error) {
	rooms := d.Rooms.ListAvailable(&ac, &bed)
	if len(rooms) == 0 {
		return nil, ErrNoMatchingRooms
	}
	numbers := make([]int, 0, len(rooms))
	for _, r := range rooms {
		numbers = append(numbers, r.RoomNumber)
	}
	if err := d.status("Available rooms: %s", joinInts(numbers)); err != nil {
		return nil, err
	}
	return numbers, nil
}

// Book validates the request and books the room.
func (d *Desk) Book(req BookingRequest) error {
	if err := ValidateBooking(req); err != nil {
		d.warn("Booking input rejected", logger.Action("book"), logger.Room(req.Room), logger.Reason(err.Error()))
		return err
	}

	ok, err := d.Rooms.Book(req.Room, req.Customer, req.CheckIn, req.CheckOut)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBookingFailed
	}
	return d.status("Room %d booked successfully!", req.Room)
}

// ValidateBooking rejects empty fields and dates not in DD/MM/YYYY.
func ValidateBooking(req BookingRequest) error {
	if req.Customer == "" || req.CheckIn == "" || req.CheckOut == "" {
		return ErrMissingFields
	}
	for _, date := range []string{req.CheckIn, req.CheckOut} {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

// ListBooked prints the "N - Customer" options offered at checkout.
func (d *Desk) ListBooked() ([]models.Room, error) {
	booked := d.Rooms.ListBooked()
	if len(booked) == 0 {
		return nil, ErrNoBookings
	}
	for _, r := range booked {
		if _, err := fmt.Fprintf(d.Out, "%d - %s\n", r.RoomNumber, r.CustomerName); err != nil {
			return nil, err
		}
	}
	return booked, nil
}

// CheckOut checks the guest out of the room and prints the stay summary.
func (d *Desk) CheckOut(roomNumber int) (models.Checkout, error) {
	checkout, ok, err := d.Rooms.CheckOut(roomNumber)
	if err != nil {
		return models.Checkout{}, err
	}
	if !ok {
		return models.Checkout{}, ErrCheckoutFailed
	}

	msg := fmt.Sprintf("Room %d checked out successfully!\n\nGuest: %s\nStay: %s\n",
		checkout.RoomNumber, checkout.Customer, checkout.Period)
	if _, err := io.WriteString(d.Out, msg); err != nil {
		return models.Checkout{}, err
	}
	return checkout, nil
}

func (d *Desk) renderRooms(rooms []models.Room) error {
	tw := tabwriter.NewWriter(d.Out, 2, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "Room No.\tAC\tBed Type\tStatus\tCustomer\tBooking Period"); err != nil {
		return err
	}
	for _, r := range rooms {
		status, customer, period := "Available", "", ""
		if r.Booked {
			status, customer, period = "Booked", r.CustomerName, r.Period()
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.RoomNumber, yesNo(r.AC), bedType(r.DoubleBed), status, customer, period); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (d *Desk) warn(msg string, fields ...logger.Field) {
	if d.Logger != nil {
		d.Logger.Warn(msg, fields...)
	}
}

func (d *Desk) status(format string, args ...any) error {
	_, err := fmt.Fprintf(d.Out, format+"\n", args...)
	return err
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func bedType(double bool) string {
	if double {
		return "Double"
	}
	return "Single"
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
