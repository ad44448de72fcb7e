// Package parking defines the typed records exchanged with the parking
// management service, the writable-field models accepted by its mutation
// endpoints, and the error taxonomy shared by the gateway and cache layers.
package parking

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies one of the cached resource collections.
type Kind string

const (
	KindParking Kind = "parkings"
	KindCar     Kind = "cars"
	KindSpot    Kind = "spots"
)

// Parking describes a parking location. AvailableSpots is derived by the
// service from the location's spots and is never settable by the client.
type Parking struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	AvailableSpots int     `json:"available_spots"`
	PricePerHour   float64 `json:"price_per_hour"`
}

// Car describes a vehicle that is, or was, checked in to a parking.
// Timestamps are carried verbatim in the service's local-time format; see
// [Car.CheckedOut] and [ParseTime].
type Car struct {
	ID           int     `json:"id"`
	LicenseNum   string  `json:"license_num"`
	OwnerName    string  `json:"owner_name"`
	EntryTime    string  `json:"entry_time"`
	ExitTime     string  `json:"exit_time"`
	TotalPayment float64 `json:"total_payment"`
}

// Spot describes a single parking spot. The owning parking is embedded in
// the service's responses.
type Spot struct {
	ID         int      `json:"id"`
	SpotNumber int      `json:"spot_number"`
	IsOccupied bool     `json:"is_occupied"`
	Parking    *Parking `json:"parking,omitempty"`
}

// Login carries operator credentials for the auth endpoint.
type Login struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Checkout is the secondary payload returned when a car is checked out.
// PaymentDue is a formatted amount and is surfaced verbatim; the service
// contract does not guarantee a numeric type.
type Checkout struct {
	Message    string `json:"message"`
	PaymentDue string `json:"paymentDue"`
}

// timeLayout is the service's local-time timestamp format. It carries no
// zone designator, so records keep timestamps as strings and callers parse
// on demand.
const timeLayout = "2006-01-02T15:04:05"

// zeroTime is how the service represents an unset timestamp.
const zeroTime = "0001-01-01T00:00:00"

// ParseTime parses a service timestamp. Returns the zero time for unset
// values.
func ParseTime(s string) (time.Time, error) {
	if s == "" || s == zeroTime {
		return time.Time{}, nil
	}
	// Some responses carry fractional seconds.
	if t, err := time.Parse(timeLayout+".999999999", s); err == nil {
		return t, nil
	}
	return time.Parse(timeLayout, s)
}

// CheckedOut reports whether the car has left the parking.
func (c *Car) CheckedOut() bool {
	return c.ExitTime != "" && c.ExitTime != zeroTime
}

var errMissingField = errors.New("missing required field")

// ParkingPost is the writable-field set for creating a parking.
type ParkingPost struct {
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	TotalSpots   int     `json:"total_spots"`
	PricePerHour float64 `json:"price_per_hour"`
}

func (p *ParkingPost) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name", errMissingField)
	}
	if p.Location == "" {
		return fmt.Errorf("%w: location", errMissingField)
	}
	if p.TotalSpots <= 0 {
		return errors.New("total_spots must be positive")
	}
	if p.PricePerHour < 0 {
		return errors.New("price_per_hour must not be negative")
	}
	return nil
}

// ParkingPut is the writable-field set for updating a parking. The service
// requires the id to be repeated in the body.
type ParkingPut struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	PricePerHour float64 `json:"price_per_hour"`
	TotalSpots   int     `json:"total_spots"`
}

func (p *ParkingPut) Validate() error {
	if p.ID <= 0 {
		return errors.New("id must be positive")
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name", errMissingField)
	}
	if p.TotalSpots <= 0 {
		return errors.New("total_spots must be positive")
	}
	if p.PricePerHour < 0 {
		return errors.New("price_per_hour must not be negative")
	}
	return nil
}

// CarPost is the writable-field set for checking a car in.
type CarPost struct {
	LicenseNum string `json:"license_num"`
	OwnerName  string `json:"owner_name"`
	ParkingID  int    `json:"parkingId"`
}

func (c *CarPost) Validate() error {
	if c.LicenseNum == "" {
		return fmt.Errorf("%w: license_num", errMissingField)
	}
	if c.OwnerName == "" {
		return fmt.Errorf("%w: owner_name", errMissingField)
	}
	if c.ParkingID <= 0 {
		return errors.New("parkingId must be positive")
	}
	return nil
}

// CarPut is the writable-field set for updating a parked car. Only the
// owner name is editable while a car is parked.
type CarPut struct {
	OwnerName string `json:"owner_name"`
}

func (c *CarPut) Validate() error {
	if c.OwnerName == "" {
		return fmt.Errorf("%w: owner_name", errMissingField)
	}
	return nil
}

// SpotPost is the writable-field set for creating a spot.
type SpotPost struct {
	SpotNumber int `json:"spot_number"`
	ParkingID  int `json:"parkingId"`
}

func (s *SpotPost) Validate() error {
	if s.SpotNumber <= 0 {
		return errors.New("spot_number must be positive")
	}
	if s.ParkingID <= 0 {
		return errors.New("parkingId must be positive")
	}
	return nil
}

// SpotPut is the writable-field set for updating a spot's occupancy.
type SpotPut struct {
	ID         int  `json:"id"`
	IsOccupied bool `json:"is_occupied"`
	CarID      int  `json:"carId"`
}

func (s *SpotPut) Validate() error {
	if s.ID <= 0 {
		return errors.New("id must be positive")
	}
	if s.IsOccupied && s.CarID <= 0 {
		return errors.New("occupied spot requires carId")
	}
	return nil
}
