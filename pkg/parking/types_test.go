package parking

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	type params struct {
		name  string
		model interface{ Validate() error }
		isErr bool
	}
	testCases := []params{
		{name: "valid parking post", model: &ParkingPost{Name: "Center", Location: "Main St 1", TotalSpots: 10, PricePerHour: 8.5}},
		{name: "parking post missing name", model: &ParkingPost{Location: "Main St 1", TotalSpots: 10}, isErr: true},
		{name: "parking post missing location", model: &ParkingPost{Name: "Center", TotalSpots: 10}, isErr: true},
		{name: "parking post zero spots", model: &ParkingPost{Name: "Center", Location: "Main St 1"}, isErr: true},
		{name: "parking post negative price", model: &ParkingPost{Name: "Center", Location: "Main St 1", TotalSpots: 10, PricePerHour: -1}, isErr: true},
		{name: "valid parking put", model: &ParkingPut{ID: 1, Name: "Center", TotalSpots: 10, PricePerHour: 8.5}},
		{name: "parking put without id", model: &ParkingPut{Name: "Center", TotalSpots: 10}, isErr: true},
		{name: "valid car post", model: &CarPost{LicenseNum: "AB123", OwnerName: "Dana", ParkingID: 1}},
		{name: "car post missing license", model: &CarPost{OwnerName: "Dana", ParkingID: 1}, isErr: true},
		{name: "car post missing owner", model: &CarPost{LicenseNum: "AB123", ParkingID: 1}, isErr: true},
		{name: "car post without parking", model: &CarPost{LicenseNum: "AB123", OwnerName: "Dana"}, isErr: true},
		{name: "valid car put", model: &CarPut{OwnerName: "Dana"}},
		{name: "car put missing owner", model: &CarPut{}, isErr: true},
		{name: "valid spot post", model: &SpotPost{SpotNumber: 4, ParkingID: 1}},
		{name: "spot post zero number", model: &SpotPost{ParkingID: 1}, isErr: true},
		{name: "valid vacant spot put", model: &SpotPut{ID: 2}},
		{name: "valid occupied spot put", model: &SpotPut{ID: 2, IsOccupied: true, CarID: 7}},
		{name: "occupied spot put without car", model: &SpotPut{ID: 2, IsOccupied: true}, isErr: true},
	}
	for _, test := range testCases {
		err := test.model.Validate()
		if (err != nil) != test.isErr {
			t.Errorf("%s: unexpected err = %v", test.name, err)
		}
	}
}

func TestParseTime(t *testing.T) {
	if ts, err := ParseTime("0001-01-01T00:00:00"); err != nil || !ts.IsZero() {
		t.Errorf("zero timestamp not treated as unset: %v, %v", ts, err)
	}
	if ts, err := ParseTime(""); err != nil || !ts.IsZero() {
		t.Errorf("empty timestamp not treated as unset: %v, %v", ts, err)
	}
	ts, err := ParseTime("2024-06-01T13:45:30")
	if err != nil {
		t.Fatalf("failed to parse service timestamp: %s", err)
	}
	if ts != time.Date(2024, 6, 1, 13, 45, 30, 0, time.UTC) {
		t.Errorf("parsed wrong time: %v", ts)
	}
	if _, err := ParseTime("2024-06-01T13:45:30.1234567"); err != nil {
		t.Errorf("failed to parse fractional seconds: %s", err)
	}
	if _, err := ParseTime("June 1st"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}

func TestCarCheckedOut(t *testing.T) {
	parked := Car{ID: 1, LicenseNum: "AB123", ExitTime: "0001-01-01T00:00:00"}
	if parked.CheckedOut() {
		t.Error("car with zero exit time reported checked out")
	}
	gone := Car{ID: 1, LicenseNum: "AB123", ExitTime: "2024-06-01T15:00:00"}
	if !gone.CheckedOut() {
		t.Error("car with exit time not reported checked out")
	}
}
