package cache_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/hadas32/smart-parking-hub/mocks"
	"github.com/hadas32/smart-parking-hub/pkg/cache"
	"github.com/hadas32/smart-parking-hub/pkg/parking"
)

var _ = Describe("Coordinator", func() {
	var (
		ctrl  *gomock.Controller
		gw    *mocks.Gateway
		coord *cache.Coordinator
		ctx   context.Context
	)

	centerWithSpots := func(available int) []parking.Parking {
		return []parking.Parking{
			{ID: 1, Name: "Center", Location: "Main St 1", AvailableSpots: available, PricePerHour: 8},
		}
	}
	spotsBefore := []parking.Spot{
		{ID: 10, SpotNumber: 1, IsOccupied: false},
		{ID: 11, SpotNumber: 2, IsOccupied: false},
		{ID: 12, SpotNumber: 3, IsOccupied: false},
	}
	carsBefore := []parking.Car{}

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		gw = mocks.NewGateway(ctrl)
		coord = cache.New(gw, 0)
		ctx = context.Background()
		DeferCleanup(func() {
			ctrl.Finish()
		})
	})

	Describe("reads", func() {
		It("serves repeated reads from cache with a single fetch", func() {
			gw.EXPECT().ListParkings(gomock.Any()).Return(centerWithSpots(3), nil).Times(1)

			first, err := coord.Parkings(ctx)
			Expect(err).NotTo(HaveOccurred())
			second, err := coord.Parkings(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("shares one in-flight fetch between concurrent readers", func() {
			release := make(chan struct{})
			gw.EXPECT().ListCars(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]parking.Car, error) {
				<-release
				return []parking.Car{{ID: 7, LicenseNum: "AB123"}}, nil
			}).Times(1)

			const readers = 8
			var wg sync.WaitGroup
			results := make([][]parking.Car, readers)
			errs := make([]error, readers)
			for i := 0; i < readers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					defer GinkgoRecover()
					results[i], errs[i] = coord.Cars(ctx)
				}(i)
			}
			// Let every reader join the flight before it resolves.
			time.Sleep(50 * time.Millisecond)
			close(release)
			wg.Wait()

			for i := 0; i < readers; i++ {
				Expect(errs[i]).NotTo(HaveOccurred())
				Expect(results[i]).To(HaveLen(1))
				Expect(results[i][0].LicenseNum).To(Equal("AB123"))
			}
		})

		It("does not cache failed fetches", func() {
			gw.EXPECT().ListSpots(gomock.Any()).Return(nil, &parking.StatusError{Code: http.StatusServiceUnavailable}).Times(1)
			gw.EXPECT().ListSpots(gomock.Any()).Return(spotsBefore, nil).Times(1)

			_, err := coord.Spots(ctx)
			Expect(err).To(HaveOccurred())
			Expect(coord.Cached(parking.KindSpot)).To(BeFalse())

			spots, err := coord.Spots(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(spots).To(HaveLen(3))
		})
	})

	Describe("check-in", func() {
		It("refreshes cars and spots before returning", func() {
			gw.EXPECT().ListCars(gomock.Any()).Return(carsBefore, nil).Times(1)
			gw.EXPECT().ListSpots(gomock.Any()).Return(spotsBefore, nil).Times(1)
			_, err := coord.Cars(ctx)
			Expect(err).NotTo(HaveOccurred())
			_, err = coord.Spots(ctx)
			Expect(err).NotTo(HaveOccurred())

			newCar := &parking.Car{ID: 7, LicenseNum: "AB123", OwnerName: "Dana"}
			carsAfter := []parking.Car{*newCar}
			spotsAfter := []parking.Spot{
				{ID: 10, SpotNumber: 1, IsOccupied: true},
				{ID: 11, SpotNumber: 2, IsOccupied: false},
				{ID: 12, SpotNumber: 3, IsOccupied: false},
			}
			gw.EXPECT().CreateCar(gomock.Any(), gomock.Any()).Return(newCar, nil)
			gw.EXPECT().ListCars(gomock.Any()).Return(carsAfter, nil).Times(1)
			gw.EXPECT().ListSpots(gomock.Any()).Return(spotsAfter, nil).Times(1)

			car, err := coord.CheckIn(ctx, parking.CarPost{LicenseNum: "AB123", OwnerName: "Dana", ParkingID: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(car.ID).To(Equal(7))

			// Both dependent collections were refreshed before CheckIn
			// returned; these reads hit the cache (no further EXPECTs).
			cars, err := coord.Cars(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(Equal(carsAfter))
			spots, err := coord.Spots(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(spots[0].IsOccupied).To(BeTrue())
		})

		It("shows the decremented available-spot count on the next parking read", func() {
			gw.EXPECT().CreateCar(gomock.Any(), gomock.Any()).Return(&parking.Car{ID: 7, LicenseNum: "AB123"}, nil)
			gw.EXPECT().ListCars(gomock.Any()).Return([]parking.Car{{ID: 7, LicenseNum: "AB123"}}, nil)
			gw.EXPECT().ListSpots(gomock.Any()).Return(spotsBefore, nil)
			// Parkings are not pre-cached, so the next read fetches the
			// service's recomputed derived count.
			gw.EXPECT().ListParkings(gomock.Any()).Return(centerWithSpots(2), nil).Times(1)

			_, err := coord.CheckIn(ctx, parking.CarPost{LicenseNum: "AB123", OwnerName: "Dana", ParkingID: 1})
			Expect(err).NotTo(HaveOccurred())

			parkings, err := coord.Parkings(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(parkings[0].AvailableSpots).To(Equal(2))
		})

		It("leaves every cache untouched when the service rejects the car", func() {
			gw.EXPECT().ListCars(gomock.Any()).Return(carsBefore, nil).Times(1)
			gw.EXPECT().ListParkings(gomock.Any()).Return(centerWithSpots(3), nil).Times(1)
			before, err := coord.Cars(ctx)
			Expect(err).NotTo(HaveOccurred())
			parkingsBefore, err := coord.Parkings(ctx)
			Expect(err).NotTo(HaveOccurred())

			gw.EXPECT().CreateCar(gomock.Any(), gomock.Any()).
				Return(nil, &parking.StatusError{Code: http.StatusConflict, Message: "duplicate license"})

			_, err = coord.CheckIn(ctx, parking.CarPost{LicenseNum: "AB123", OwnerName: "Dana", ParkingID: 1})
			Expect(parking.IsValidation(err)).To(BeTrue())

			// No invalidation ran: cached collections answer without new fetches.
			cars, err := coord.Cars(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(Equal(before))
			parkings, err := coord.Parkings(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(parkings).To(Equal(parkingsBefore))
			Expect(parkings[0].AvailableSpots).To(Equal(3))
		})

		It("reports stale collections when a refetch fails", func() {
			gw.EXPECT().CreateCar(gomock.Any(), gomock.Any()).Return(&parking.Car{ID: 7}, nil)
			gw.EXPECT().ListCars(gomock.Any()).Return([]parking.Car{{ID: 7}}, nil)
			gw.EXPECT().ListSpots(gomock.Any()).Return(nil, &parking.RequestError{Err: context.DeadlineExceeded})

			_, err := coord.CheckIn(ctx, parking.CarPost{LicenseNum: "AB123", OwnerName: "Dana", ParkingID: 1})
			Expect(parking.IsPartialInvalidation(err)).To(BeTrue())

			var pe *parking.PartialInvalidationError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Stale).To(ConsistOf(parking.KindSpot))

			// The refreshed collection is trustworthy, the failed one is absent.
			Expect(coord.Cached(parking.KindCar)).To(BeTrue())
			Expect(coord.Cached(parking.KindSpot)).To(BeFalse())
		})
	})

	Describe("check-out", func() {
		It("frees the spot, drops the car, and returns the payment figure", func() {
			receipt := &parking.Checkout{Message: "Car checked out", PaymentDue: "24.50"}
			spotsAfter := []parking.Spot{
				{ID: 10, SpotNumber: 1, IsOccupied: false},
			}
			gw.EXPECT().DeleteCar(gomock.Any(), 7).Return(receipt, nil)
			gw.EXPECT().ListCars(gomock.Any()).Return([]parking.Car{}, nil)
			gw.EXPECT().ListSpots(gomock.Any()).Return(spotsAfter, nil)

			got, err := coord.CheckOut(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.PaymentDue).To(Equal("24.50"))

			cars, err := coord.Cars(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(BeEmpty())
			spots, err := coord.Spots(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(spots[0].IsOccupied).To(BeFalse())
		})
	})

	Describe("invalidation rules", func() {
		It("refreshes parkings and spots after a parking update", func() {
			gw.EXPECT().UpdateParking(gomock.Any(), 1, gomock.Any()).Return(&parking.Parking{ID: 1}, nil)
			gw.EXPECT().ListParkings(gomock.Any()).Return(centerWithSpots(5), nil)
			gw.EXPECT().ListSpots(gomock.Any()).Return(spotsBefore, nil)

			_, err := coord.UpdateParking(ctx, 1, parking.ParkingPut{Name: "Center", TotalSpots: 5, PricePerHour: 8})
			Expect(err).NotTo(HaveOccurred())
			Expect(coord.Cached(parking.KindParking)).To(BeTrue())
			Expect(coord.Cached(parking.KindSpot)).To(BeTrue())
			Expect(coord.Cached(parking.KindCar)).To(BeFalse())
		})

		It("refreshes all three collections after a parking delete", func() {
			gw.EXPECT().DeleteParking(gomock.Any(), 1).Return(nil)
			gw.EXPECT().ListParkings(gomock.Any()).Return([]parking.Parking{}, nil)
			gw.EXPECT().ListSpots(gomock.Any()).Return([]parking.Spot{}, nil)
			gw.EXPECT().ListCars(gomock.Any()).Return([]parking.Car{}, nil)

			Expect(coord.DeleteParking(ctx, 1)).To(Succeed())
			Expect(coord.Cached(parking.KindParking)).To(BeTrue())
			Expect(coord.Cached(parking.KindSpot)).To(BeTrue())
			Expect(coord.Cached(parking.KindCar)).To(BeTrue())
		})

		It("applies the same rule idempotently", func() {
			gw.EXPECT().UpdateSpot(gomock.Any(), 10, gomock.Any()).Return(&parking.Spot{ID: 10}, nil).Times(2)
			gw.EXPECT().ListSpots(gomock.Any()).Return(spotsBefore, nil).Times(2)
			gw.EXPECT().ListParkings(gomock.Any()).Return(centerWithSpots(3), nil).Times(2)

			_, err := coord.UpdateSpot(ctx, 10, parking.SpotPut{})
			Expect(err).NotTo(HaveOccurred())
			first, err := coord.Spots(ctx)
			Expect(err).NotTo(HaveOccurred())

			_, err = coord.UpdateSpot(ctx, 10, parking.SpotPut{})
			Expect(err).NotTo(HaveOccurred())
			second, err := coord.Spots(ctx)
			Expect(err).NotTo(HaveOccurred())

			// Same rule twice, same contents: no duplicated entries.
			Expect(second).To(Equal(first))
			Expect(second).To(HaveLen(len(spotsBefore)))
		})
	})

	Describe("eviction and persistence", func() {
		It("EvictAll empties every collection", func() {
			gw.EXPECT().ListParkings(gomock.Any()).Return(centerWithSpots(3), nil)
			_, err := coord.Parkings(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(coord.Cached(parking.KindParking)).To(BeTrue())

			coord.EvictAll()
			Expect(coord.Cached(parking.KindParking)).To(BeFalse())
			Expect(coord.Cached(parking.KindCar)).To(BeFalse())
			Expect(coord.Cached(parking.KindSpot)).To(BeFalse())
		})

		It("round-trips cached collections through Export and Import", func() {
			gw.EXPECT().ListParkings(gomock.Any()).Return(centerWithSpots(3), nil)
			gw.EXPECT().ListSpots(gomock.Any()).Return(spotsBefore, nil)
			_, err := coord.Parkings(ctx)
			Expect(err).NotTo(HaveOccurred())
			_, err = coord.Spots(ctx)
			Expect(err).NotTo(HaveOccurred())

			var buf bytes.Buffer
			Expect(coord.Export(&buf)).To(Succeed())

			restored := cache.New(gw, 0)
			Expect(restored.Import(&buf)).To(Succeed())
			Expect(restored.Cached(parking.KindParking)).To(BeTrue())
			Expect(restored.Cached(parking.KindSpot)).To(BeTrue())
			Expect(restored.Cached(parking.KindCar)).To(BeFalse())

			parkings, err := restored.Parkings(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(parkings).To(Equal(centerWithSpots(3)))
		})
	})
})
