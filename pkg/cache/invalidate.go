package cache

import (
	"context"

	"github.com/hadas32/smart-parking-hub/internal/log"
	"github.com/hadas32/smart-parking-hub/pkg/parking"
)

// Mutation identifies a row in the invalidation table.
type Mutation int

const (
	MutParkingCreate Mutation = iota
	MutParkingUpdate
	MutParkingDelete
	MutCarCheckIn
	MutCarUpdate
	MutCarCheckOut
	MutSpotCreate
	MutSpotUpdate
	MutSpotDelete
)

// staleAfter is the single source of truth for which cached collections
// each successful mutation invalidates. Any mutation that changes
// occupancy or capacity invalidates both collections whose derived counts
// depend on it; callers never decide invalidation themselves.
var staleAfter = map[Mutation][]parking.Kind{
	MutParkingCreate: {parking.KindParking},
	MutParkingUpdate: {parking.KindParking, parking.KindSpot},
	MutParkingDelete: {parking.KindParking, parking.KindSpot, parking.KindCar},
	MutCarCheckIn:    {parking.KindCar, parking.KindSpot},
	MutCarUpdate:     {parking.KindCar},
	MutCarCheckOut:   {parking.KindCar, parking.KindSpot},
	MutSpotCreate:    {parking.KindSpot, parking.KindParking},
	MutSpotUpdate:    {parking.KindSpot, parking.KindParking},
	MutSpotDelete:    {parking.KindSpot, parking.KindParking},
}

// settle applies m's invalidation rule: evict every dependent collection,
// then refetch each before returning. Eviction happens first so that a
// failed refetch leaves the collection absent rather than stale. If any
// refetch fails the mutation's caller receives a
// *parking.PartialInvalidationError naming the collections it must not
// trust.
func (c *Coordinator) settle(ctx context.Context, m Mutation) error {
	kinds := staleAfter[m]

	c.mu.Lock()
	for _, kind := range kinds {
		c.store.Delete(string(kind))
	}
	c.mu.Unlock()

	var stale []parking.Kind
	var firstErr error
	for _, kind := range kinds {
		if _, err := c.collection(ctx, kind); err != nil {
			log.Warning("Failed to refresh %s after mutation: %s", kind, err)
			stale = append(stale, kind)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return &parking.PartialInvalidationError{Stale: stale, Err: firstErr}
	}
	return nil
}

// CheckIn registers a car, occupying one free spot in the requested
// parking. On success the Car and Spot collections are refreshed before
// returning, so the next read observes the new occupancy and the decreased
// available-spot count together.
func (c *Coordinator) CheckIn(ctx context.Context, model parking.CarPost) (*parking.Car, error) {
	car, err := c.gw.CreateCar(ctx, model)
	if err != nil {
		return nil, err
	}
	return car, c.settle(ctx, MutCarCheckIn)
}

// CheckOut removes a car, freeing its spot and finalizing payment. The
// returned Checkout carries the amount due as a formatted string.
func (c *Coordinator) CheckOut(ctx context.Context, id int) (*parking.Checkout, error) {
	receipt, err := c.gw.DeleteCar(ctx, id)
	if err != nil {
		return nil, err
	}
	return receipt, c.settle(ctx, MutCarCheckOut)
}

// RenameOwner edits a parked car's owner name.
func (c *Coordinator) RenameOwner(ctx context.Context, id int, model parking.CarPut) (*parking.Car, error) {
	car, err := c.gw.UpdateCar(ctx, id, model)
	if err != nil {
		return nil, err
	}
	return car, c.settle(ctx, MutCarUpdate)
}

// CreateParking adds a parking location.
func (c *Coordinator) CreateParking(ctx context.Context, model parking.ParkingPost) (*parking.Parking, error) {
	p, err := c.gw.CreateParking(ctx, model)
	if err != nil {
		return nil, err
	}
	return p, c.settle(ctx, MutParkingCreate)
}

// UpdateParking edits a parking. Capacity and price changes affect
// displayed spot availability, so the Spot collection is refreshed too.
func (c *Coordinator) UpdateParking(ctx context.Context, id int, model parking.ParkingPut) (*parking.Parking, error) {
	p, err := c.gw.UpdateParking(ctx, id, model)
	if err != nil {
		return nil, err
	}
	return p, c.settle(ctx, MutParkingUpdate)
}

// DeleteParking removes a parking together with its spots and any cars
// checked in to them, so all three collections are refreshed.
func (c *Coordinator) DeleteParking(ctx context.Context, id int) error {
	if err := c.gw.DeleteParking(ctx, id); err != nil {
		return err
	}
	return c.settle(ctx, MutParkingDelete)
}

// CreateSpot adds a spot to a parking.
func (c *Coordinator) CreateSpot(ctx context.Context, model parking.SpotPost) (*parking.Spot, error) {
	s, err := c.gw.CreateSpot(ctx, model)
	if err != nil {
		return nil, err
	}
	return s, c.settle(ctx, MutSpotCreate)
}

// UpdateSpot overrides a spot's occupancy.
func (c *Coordinator) UpdateSpot(ctx context.Context, id int, model parking.SpotPut) (*parking.Spot, error) {
	s, err := c.gw.UpdateSpot(ctx, id, model)
	if err != nil {
		return nil, err
	}
	return s, c.settle(ctx, MutSpotUpdate)
}

// DeleteSpot removes a spot.
func (c *Coordinator) DeleteSpot(ctx context.Context, id int) error {
	if err := c.gw.DeleteSpot(ctx, id); err != nil {
		return err
	}
	return c.settle(ctx, MutSpotDelete)
}
