package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/internal/data/repository"
	"lodge-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testClock = func() time.Time {
	return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

type bookingTestEnv struct {
	svc      BookingService
	bookings *fakeBookingRepo
	rooms    *fakeRoomRepo
}

func newBookingTestEnv(rooms ...*entity.Room) *bookingTestEnv {
	bookingRepo := newFakeBookingRepo()
	roomRepo := newFakeRoomRepo(rooms...)
	repo := &repository.Repository{
		Booking: bookingRepo,
		Room:    roomRepo,
	}

	availability := NewAvailabilityService(repo, zap.NewNop())
	availability.(*availabilityService).now = testClock

	svc := NewBookingService(repo, availability, zap.NewNop())
	svc.(*bookingService).now = testClock

	return &bookingTestEnv{
		svc:      svc,
		bookings: bookingRepo,
		rooms:    roomRepo,
	}
}

func deluxeRoom() *entity.Room {
	return &entity.Room{
		RoomID:          101,
		RoomNumber:      "101",
		Title:           "Deluxe Valley View",
		CategoryID:      1,
		Price:           2500,
		OfferPercentage: 20,
		FinalPrice:      2000,
		IsAvailable:     true,
		IsEnabled:       true,
	}
}

func createReq(checkIn, checkOut string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		RoomID:       101,
		FullName:     "Asha Nair",
		Email:        "asha@example.com",
		Phone:        "+919812345678",
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}
}

func TestCreateBooking(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	userID := uuid.New().String()

	resp, err := env.svc.CreateBooking(context.Background(), userID, createReq("2025-03-10", "2025-03-13"))
	require.NoError(t, err)
	require.NotNil(t, resp)

	// Three nights priced at the room's discounted rate, frozen at
	// creation time.
	assert.Equal(t, 3, resp.TotalNights)
	assert.Equal(t, 2000.0, resp.PricePerNight)
	assert.Equal(t, 6000.0, resp.TotalAmount)

	assert.Equal(t, entity.BookingStatusPending, resp.BookingStatus)
	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	assert.Equal(t, entity.PaymentMethodPayAtProperty, resp.PaymentMethod)
	assert.Equal(t, "14:00:00", resp.CheckInTime)
	assert.Equal(t, "11:00:00", resp.CheckOutTime)
	assert.Equal(t, 1, resp.NumAdults)
	assert.Equal(t, userID, resp.UserID)

	assert.True(t, strings.HasPrefix(resp.BookingRef, "TSN"))

	// The booking occupies the room, so creation reconciles it busy.
	last, ok := env.rooms.lastAvailability()
	require.True(t, ok)
	assert.Equal(t, 101, last.roomID)
	assert.False(t, last.available)
}

func TestCreateBookingLaterPriceChangeDoesNotAffectTotal(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	userID := uuid.New().String()

	resp, err := env.svc.CreateBooking(context.Background(), userID, createReq("2025-03-10", "2025-03-13"))
	require.NoError(t, err)

	env.rooms.rooms[101].FinalPrice = 9999

	reread, err := env.svc.GetBookingByRef(context.Background(), resp.BookingRef)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, reread.PricePerNight)
	assert.Equal(t, 6000.0, reread.TotalAmount)
}

func TestCreateBookingValidation(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())

	req := createReq("2025-03-10", "2025-03-13")
	req.Email = ""

	_, err := env.svc.CreateBooking(context.Background(), uuid.New().String(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCreateBookingPastCheckIn(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())

	_, err := env.svc.CreateBooking(context.Background(), uuid.New().String(), createReq("2025-02-20", "2025-02-23"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be in the past")
}

func TestCreateBookingSameDayCheckInAllowed(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())

	_, err := env.svc.CreateBooking(context.Background(), uuid.New().String(), createReq("2025-03-01", "2025-03-02"))
	assert.NoError(t, err)
}

func TestCreateBookingCheckOutNotAfterCheckIn(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())

	_, err := env.svc.CreateBooking(context.Background(), uuid.New().String(), createReq("2025-03-10", "2025-03-10"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be after check-in date")
}

func TestCreateBookingRoomNotFound(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())

	req := createReq("2025-03-10", "2025-03-13")
	req.RoomID = 999

	_, err := env.svc.CreateBooking(context.Background(), uuid.New().String(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateBookingRoomDisabled(t *testing.T) {
	room := deluxeRoom()
	room.IsEnabled = false
	env := newBookingTestEnv(room)

	_, err := env.svc.CreateBooking(context.Background(), uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestCreateBookingOverlapRejected(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	ctx := context.Background()

	_, err := env.svc.CreateBooking(ctx, uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.NoError(t, err)

	_, err = env.svc.CreateBooking(ctx, uuid.New().String(), createReq("2025-03-12", "2025-03-15"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDateConflict))
}

func TestCreateBookingBackToBackStaysAllowed(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	ctx := context.Background()

	_, err := env.svc.CreateBooking(ctx, uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.NoError(t, err)

	// Checkout day equals the next guest's check-in day; the ranges are
	// half-open so this is not a conflict.
	_, err = env.svc.CreateBooking(ctx, uuid.New().String(), createReq("2025-03-13", "2025-03-15"))
	assert.NoError(t, err)
}

func TestCreateBookingRetriesTakenRef(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	env.bookings.refTaken = 1

	resp, err := env.svc.CreateBooking(context.Background(), uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingRef)
	assert.Equal(t, 2, env.bookings.createCalls)
}

func TestCreateBookingRefRetriesExhausted(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	env.bookings.refTaken = 3

	_, err := env.svc.CreateBooking(context.Background(), uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrRefTaken))
	assert.Equal(t, 3, env.bookings.createCalls)
}

func TestCreateBookingLosesInsertRace(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	env.bookings.conflictOnCreate = true

	// The pre-check passes (no stored booking) but the insert itself is
	// rejected, as happens when a concurrent request wins the race.
	_, err := env.svc.CreateBooking(context.Background(), uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDateConflict))
}

func TestGetUserBookingsPagination(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	ctx := context.Background()
	userID := uuid.New().String()

	for _, dates := range [][2]string{
		{"2025-03-10", "2025-03-13"},
		{"2025-03-13", "2025-03-15"},
		{"2025-03-20", "2025-03-22"},
	} {
		_, err := env.svc.CreateBooking(ctx, userID, createReq(dates[0], dates[1]))
		require.NoError(t, err)
	}

	page, err := env.svc.GetUserBookings(ctx, userID, &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestUpdateBookingStatusConfirm(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.NoError(t, err)
	reconciles := len(env.rooms.availabilityLog)

	resp, err := env.svc.UpdateBookingStatus(ctx, created.BookingRef, &request.UpdateBookingStatusRequest{
		BookingStatus: "confirmed",
		PaymentStatus: "completed",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusConfirmed, resp.BookingStatus)
	assert.Equal(t, entity.PaymentStatusCompleted, resp.PaymentStatus)
	assert.True(t, env.bookings.lastUpdate.ConfirmedNow)
	assert.NotNil(t, resp.ConfirmedAt)

	// Status changed, so the room was reconciled again.
	assert.Equal(t, reconciles+1, len(env.rooms.availabilityLog))
}

func TestUpdateBookingStatusUnchangedSkipsReconcile(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.NoError(t, err)

	_, err = env.svc.UpdateBookingStatus(ctx, created.BookingRef, &request.UpdateBookingStatusRequest{
		BookingStatus: "confirmed",
	})
	require.NoError(t, err)
	reconciles := len(env.rooms.availabilityLog)

	// Same status again: admin remarks may still be updated, but the
	// confirmation timestamp must not be restamped and no reconcile runs.
	remarks := "guest called to reconfirm"
	_, err = env.svc.UpdateBookingStatus(ctx, created.BookingRef, &request.UpdateBookingStatusRequest{
		BookingStatus: "confirmed",
		AdminRemarks:  &remarks,
	})
	require.NoError(t, err)

	assert.False(t, env.bookings.lastUpdate.ConfirmedNow)
	assert.Equal(t, reconciles, len(env.rooms.availabilityLog))
}

func TestUpdateBookingStatusCancelFreesRoom(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.NoError(t, err)

	resp, err := env.svc.UpdateBookingStatus(ctx, created.BookingRef, &request.UpdateBookingStatusRequest{
		BookingStatus: "cancelled",
	})
	require.NoError(t, err)

	assert.True(t, env.bookings.lastUpdate.CancelledNow)
	assert.NotNil(t, resp.CancelledAt)

	last, ok := env.rooms.lastAvailability()
	require.True(t, ok)
	assert.True(t, last.available)
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())

	_, err := env.svc.UpdateBookingStatus(context.Background(), "TSN20250301999", &request.UpdateBookingStatusRequest{
		BookingStatus: "confirmed",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteBookingReconcilesRoom(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.NoError(t, err)

	err = env.svc.DeleteBooking(ctx, created.BookingRef)
	require.NoError(t, err)

	// The only active booking is gone, so the delete frees the room
	// immediately instead of waiting for the scheduled sweep.
	last, ok := env.rooms.lastAvailability()
	require.True(t, ok)
	assert.True(t, last.available)

	_, err = env.svc.GetBookingByRef(ctx, created.BookingRef)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteBookingNotFound(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())

	err := env.svc.DeleteBooking(context.Background(), "TSN20250301999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetAllBookingsFilterByStatus(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())
	ctx := context.Background()

	first, err := env.svc.CreateBooking(ctx, uuid.New().String(), createReq("2025-03-10", "2025-03-13"))
	require.NoError(t, err)
	_, err = env.svc.CreateBooking(ctx, uuid.New().String(), createReq("2025-03-13", "2025-03-15"))
	require.NoError(t, err)

	_, err = env.svc.UpdateBookingStatus(ctx, first.BookingRef, &request.UpdateBookingStatusRequest{
		BookingStatus: "confirmed",
	})
	require.NoError(t, err)

	pending, err := env.svc.GetPendingBookings(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entity.BookingStatusPending, pending[0].BookingStatus)

	confirmed, err := env.svc.GetAllBookings(ctx, &request.AdminBookingFilterRequest{Status: "confirmed"})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, first.BookingRef, confirmed[0].BookingRef)
}

func TestGetAllBookingsInvalidDateFilter(t *testing.T) {
	env := newBookingTestEnv(deluxeRoom())

	_, err := env.svc.GetAllBookings(context.Background(), &request.AdminBookingFilterRequest{Date: "13-03-2025"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}
