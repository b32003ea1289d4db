package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/EpicMandM/hotel-manager/internal/models"
)

// CoinFunc returns an independent, uniformly random boolean.
type CoinFunc func() (bool, error)

var two = big.NewInt(2)

// RandomBool flips a fair coin using crypto/rand.
func RandomBool() (bool, error) {
	n, err := rand.Int(rand.Reader, two)
	if err != nil {
		return false, fmt.Errorf("failed to generate random number: %w", err)
	}
	return n.Int64() == 1, nil
}

// ProvisionRooms creates rooms numbered 1..count, all unbooked, with AC and
// bed type chosen by coin.
func ProvisionRooms(count int, coin CoinFunc) ([]models.Room, error) {
	if count < 1 {
		return nil, fmt.Errorf("room count must be at least 1, got %d", count)
	}
	if coin == nil {
		coin = RandomBool
	}

	rooms := make([]models.Room, 0, count)
	for i := 1; i <= count; i++ {
		ac, err := coin()
		if err != nil {
			return nil, err
		}
		double, err := coin()
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, models.Room{RoomNumber: i, AC: ac, DoubleBed: double})
	}
	return rooms, nil
}
