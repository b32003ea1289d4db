package service

import "github.com/EpicMandM/hotel-manager/internal/models"

// RoomManager abstracts room inventory operations for the front desk.
type RoomManager interface {
	ListAll() []models.Room
	ListAvailable(wantAC, wantDoubleBed *bool) []models.Room
	ListBooked() []models.Room
	Book(roomNumber int, customerName, checkIn, checkOut string) (bool, error)
	CheckOut(roomNumber int) (models.Checkout, bool, error)
}

var _ RoomManager = (*RoomStore)(nil)
