package models

import "fmt"

// Room represents a single bookable hotel room.
type Room struct {
	RoomNumber   int    `json:"room_number"`
	AC           bool   `json:"ac"`
	DoubleBed    bool   `json:"double_bed"`
	Booked       bool   `json:"booked"`
	CustomerName string `json:"customer_name"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
}

// Period formats the stay as "<check-in> to <check-out>".
func (r Room) Period() string {
	return FormatPeriod(r.CheckIn, r.CheckOut)
}

// Available reports whether the room can be booked.
func (r Room) Available() bool {
	return !r.Booked
}

func (r Room) String() string {
	return fmt.Sprintf("Room(number=%d, AC=%t, DoubleBed=%t, Booked=%t, Customer=%s, CheckIn=%s, CheckOut=%s)",
		r.RoomNumber, r.AC, r.DoubleBed, r.Booked, r.CustomerName, r.CheckIn, r.CheckOut)
}

// Checkout is the booking detail captured when a guest leaves, after the
// live room record has been cleared.
type Checkout struct {
	RoomNumber int    `json:"room_number"`
	Customer   string `json:"customer"`
	Period     string `json:"period"`
}

func FormatPeriod(checkIn, checkOut string) string {
	return checkIn + " to " + checkOut
}
