package cache

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hadas32/smart-parking-hub/internal/log"
	"github.com/hadas32/smart-parking-hub/pkg/parking"
)

// Gateway is the request layer the Coordinator drives. *gateway.Client
// satisfies it.
type Gateway interface {
	ListParkings(ctx context.Context) ([]parking.Parking, error)
	ListCars(ctx context.Context) ([]parking.Car, error)
	ListSpots(ctx context.Context) ([]parking.Spot, error)

	CreateParking(ctx context.Context, model parking.ParkingPost) (*parking.Parking, error)
	UpdateParking(ctx context.Context, id int, model parking.ParkingPut) (*parking.Parking, error)
	DeleteParking(ctx context.Context, id int) error

	CreateCar(ctx context.Context, model parking.CarPost) (*parking.Car, error)
	UpdateCar(ctx context.Context, id int, model parking.CarPut) (*parking.Car, error)
	DeleteCar(ctx context.Context, id int) (*parking.Checkout, error)

	CreateSpot(ctx context.Context, model parking.SpotPost) (*parking.Spot, error)
	UpdateSpot(ctx context.Context, id int, model parking.SpotPut) (*parking.Spot, error)
	DeleteSpot(ctx context.Context, id int) error
}

// flight tracks one in-progress fetch so concurrent readers of the same
// kind share a single request.
type flight struct {
	done chan struct{}
	val  interface{}
	err  error
}

// Coordinator caches one collection per resource kind and refreshes the
// dependent collections after each successful mutation. All entry writes
// go through the Coordinator; reads never mutate shared state.
type Coordinator struct {
	gw Gateway

	mu       sync.Mutex
	store    *gocache.Cache
	inflight map[parking.Kind]*flight
}

// New returns a Coordinator backed by gw. Cached collections expire after
// ttl and are refetched on the next read; a non-positive ttl disables
// expiry so entries stay valid until a mutation invalidates them.
func New(gw Gateway, ttl time.Duration) *Coordinator {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Coordinator{
		gw:       gw,
		store:    gocache.New(ttl, 10*time.Minute),
		inflight: make(map[parking.Kind]*flight),
	}
}

// Parkings returns the cached parking collection, fetching it first if
// absent or expired.
func (c *Coordinator) Parkings(ctx context.Context) ([]parking.Parking, error) {
	v, err := c.collection(ctx, parking.KindParking)
	if err != nil {
		return nil, err
	}
	return v.([]parking.Parking), nil
}

// Cars returns the cached car collection, fetching it first if absent or
// expired.
func (c *Coordinator) Cars(ctx context.Context) ([]parking.Car, error) {
	v, err := c.collection(ctx, parking.KindCar)
	if err != nil {
		return nil, err
	}
	return v.([]parking.Car), nil
}

// Spots returns the cached spot collection, fetching it first if absent or
// expired.
func (c *Coordinator) Spots(ctx context.Context) ([]parking.Spot, error) {
	v, err := c.collection(ctx, parking.KindSpot)
	if err != nil {
		return nil, err
	}
	return v.([]parking.Spot), nil
}

// collection serves kind from cache, joining an in-flight fetch if one
// exists and starting one otherwise.
func (c *Coordinator) collection(ctx context.Context, kind parking.Kind) (interface{}, error) {
	c.mu.Lock()
	if v, ok := c.store.Get(string(kind)); ok {
		c.mu.Unlock()
		return v, nil
	}
	if f, ok := c.inflight[kind]; ok {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.val, f.err
		case <-ctx.Done():
			// The shared fetch keeps running; only this caller gives up.
			return nil, ctx.Err()
		}
	}
	f := &flight{done: make(chan struct{})}
	c.inflight[kind] = f
	c.mu.Unlock()

	val, err := c.fetch(ctx, kind)

	c.mu.Lock()
	delete(c.inflight, kind)
	if err == nil {
		c.store.SetDefault(string(kind), val)
	}
	c.mu.Unlock()

	f.val, f.err = val, err
	close(f.done)
	return val, err
}

func (c *Coordinator) fetch(ctx context.Context, kind parking.Kind) (interface{}, error) {
	log.Debug("Fetching %s collection", kind)
	switch kind {
	case parking.KindParking:
		return c.gw.ListParkings(ctx)
	case parking.KindCar:
		return c.gw.ListCars(ctx)
	case parking.KindSpot:
		return c.gw.ListSpots(ctx)
	}
	panic("cache: unknown resource kind " + kind)
}

// EvictAll drops every cached collection. Used on session teardown.
func (c *Coordinator) EvictAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Flush()
}

// Cached reports whether kind currently has an unexpired cache entry.
func (c *Coordinator) Cached(kind parking.Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store.Get(string(kind))
	return ok
}

// snapshot is the serialized form of the cache contents.
type snapshot struct {
	Parkings []parking.Parking `json:"parkings,omitempty"`
	Cars     []parking.Car     `json:"cars,omitempty"`
	Spots    []parking.Spot    `json:"spots,omitempty"`
}

// Export writes the currently cached collections to w as JSON. Absent
// collections are omitted.
func (c *Coordinator) Export(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var snap snapshot
	if v, ok := c.store.Get(string(parking.KindParking)); ok {
		snap.Parkings = v.([]parking.Parking)
	}
	if v, ok := c.store.Get(string(parking.KindCar)); ok {
		snap.Cars = v.([]parking.Car)
	}
	if v, ok := c.store.Get(string(parking.KindSpot)); ok {
		snap.Spots = v.([]parking.Spot)
	}
	return json.NewEncoder(w).Encode(&snap)
}

// ExportToFile writes the cache contents to disk.
func (c *Coordinator) ExportToFile(filename string) error {
	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	return c.Export(file)
}

// Import populates the cache from data previously produced by Export.
// Collections absent from the data are left untouched.
func (c *Coordinator) Import(r io.Reader) error {
	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if snap.Parkings != nil {
		c.store.SetDefault(string(parking.KindParking), snap.Parkings)
	}
	if snap.Cars != nil {
		c.store.SetDefault(string(parking.KindCar), snap.Cars)
	}
	if snap.Spots != nil {
		c.store.SetDefault(string(parking.KindSpot), snap.Spots)
	}
	return nil
}

// ImportFromFile reads cache contents from disk.
func (c *Coordinator) ImportFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return c.Import(file)
}
