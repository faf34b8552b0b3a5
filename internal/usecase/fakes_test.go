package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/internal/data/repository"

	"github.com/google/uuid"
)

// fakeBookingRepo is an in-memory stand-in for the bookings table,
// including the conflict semantics the database constraints enforce.
type fakeBookingRepo struct {
	bookings map[string]*entity.Booking

	// refTaken makes the next N Create calls fail with ErrRefTaken.
	refTaken int
	// conflictOnCreate simulates losing the insert race to a concurrent
	// booking that passed the pre-check.
	conflictOnCreate bool

	createCalls int
	lastUpdate  repository.StatusUpdate

	countErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.createCalls++
	if f.refTaken > 0 {
		f.refTaken--
		return repository.ErrRefTaken
	}
	if f.conflictOnCreate {
		return repository.ErrDateConflict
	}
	if _, ok := f.bookings[booking.BookingRef]; ok {
		return repository.ErrRefTaken
	}
	for _, b := range f.bookings {
		if b.RoomID == booking.RoomID && b.Status.Active() &&
			Overlaps(booking.CheckInDate, booking.CheckOutDate, b.CheckInDate, b.CheckOutDate) {
			return repository.ErrDateConflict
		}
	}
	cp := *booking
	f.bookings[booking.BookingRef] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByRef(ctx context.Context, ref string) (*entity.Booking, error) {
	b, ok := f.bookings[ref]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) FindByRefWithRoom(ctx context.Context, ref string) (*repository.BookingWithRoom, error) {
	b, ok := f.bookings[ref]
	if !ok {
		return nil, nil
	}
	return &repository.BookingWithRoom{
		Booking:      *b,
		RoomTitle:    "Deluxe Valley View",
		RoomNumber:   "101",
		CategoryName: "Deluxe",
	}, nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*repository.BookingWithRoom, error) {
	var out []*repository.BookingWithRoom
	for _, ref := range f.sortedRefs() {
		b := f.bookings[ref]
		if b.UserID != userID {
			continue
		}
		out = append(out, &repository.BookingWithRoom{Booking: *b})
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, filter repository.BookingFilter) ([]*repository.BookingWithRoom, error) {
	var out []*repository.BookingWithRoom
	for _, ref := range f.sortedRefs() {
		b := f.bookings[ref]
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.BookingRef != nil && b.BookingRef != *filter.BookingRef {
			continue
		}
		if filter.CheckInDate != nil && !b.CheckInDate.Equal(*filter.CheckInDate) {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil {
			if b.CheckInDate.Before(*filter.StartDate) || b.CheckInDate.After(*filter.EndDate) {
				continue
			}
		}
		out = append(out, &repository.BookingWithRoom{Booking: *b})
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, ref string, upd repository.StatusUpdate) error {
	b, ok := f.bookings[ref]
	if !ok {
		return fmt.Errorf("booking %s: %w", ref, repository.ErrNotFound)
	}
	f.lastUpdate = upd
	b.Status = upd.Status
	if upd.PaymentStatus != nil {
		b.PaymentStatus = *upd.PaymentStatus
	}
	if upd.AdminRemarks != nil {
		b.AdminRemarks = upd.AdminRemarks
	}
	now := time.Now()
	if upd.ConfirmedNow {
		b.ConfirmedAt = &now
	}
	if upd.CancelledNow {
		b.CancelledAt = &now
	}
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, ref string) error {
	if _, ok := f.bookings[ref]; !ok {
		return fmt.Errorf("booking %s: %w", ref, repository.ErrNotFound)
	}
	delete(f.bookings, ref)
	return nil
}

func (f *fakeBookingRepo) HasConflict(ctx context.Context, roomID int, checkIn, checkOut time.Time) (bool, error) {
	for _, b := range f.bookings {
		if b.RoomID != roomID || !b.Status.Active() {
			continue
		}
		if Overlaps(checkIn, checkOut, b.CheckInDate, b.CheckOutDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) CountActiveFromDate(ctx context.Context, roomID int, from time.Time) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, b := range f.bookings {
		if b.RoomID == roomID && b.Status.Active() && !b.CheckOutDate.Before(from) {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) sortedRefs() []string {
	refs := make([]string, 0, len(f.bookings))
	for ref := range f.bookings {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// fakeRoomRepo is an in-memory stand-in for the rooms table. Every
// SetAvailability call is recorded so tests can assert on reconciles.
type fakeRoomRepo struct {
	rooms map[int]*entity.Room

	availabilityLog []availabilityCall
	setErr          error
}

type availabilityCall struct {
	roomID    int
	available bool
}

func newFakeRoomRepo(rooms ...*entity.Room) *fakeRoomRepo {
	f := &fakeRoomRepo{rooms: make(map[int]*entity.Room)}
	for _, r := range rooms {
		f.rooms[r.RoomID] = r
	}
	return f
}

func (f *fakeRoomRepo) FindByID(ctx context.Context, roomID int) (*entity.Room, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoomRepo) FindEnabledByID(ctx context.Context, roomID int) (*repository.RoomWithCategory, error) {
	r, ok := f.rooms[roomID]
	if !ok || !r.IsEnabled {
		return nil, nil
	}
	return &repository.RoomWithCategory{Room: *r}, nil
}

func (f *fakeRoomRepo) FindEnabled(ctx context.Context, filter repository.RoomFilter) ([]*repository.RoomWithCategory, error) {
	var out []*repository.RoomWithCategory
	for _, id := range f.enabledIDs() {
		r := f.rooms[id]
		if filter.CategoryID != nil && r.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Available != nil && r.IsAvailable != *filter.Available {
			continue
		}
		if filter.MinPrice != nil && r.FinalPrice < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && r.FinalPrice > *filter.MaxPrice {
			continue
		}
		out = append(out, &repository.RoomWithCategory{Room: *r})
	}
	return out, nil
}

func (f *fakeRoomRepo) FindEnabledIDs(ctx context.Context) ([]int, error) {
	return f.enabledIDs(), nil
}

func (f *fakeRoomRepo) enabledIDs() []int {
	var ids []int
	for id, r := range f.rooms {
		if r.IsEnabled {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (f *fakeRoomRepo) SetAvailability(ctx context.Context, roomID int, available bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	r, ok := f.rooms[roomID]
	if !ok {
		return fmt.Errorf("room %d: %w", roomID, repository.ErrNotFound)
	}
	r.IsAvailable = available
	f.availabilityLog = append(f.availabilityLog, availabilityCall{roomID: roomID, available: available})
	return nil
}

func (f *fakeRoomRepo) lastAvailability() (availabilityCall, bool) {
	if len(f.availabilityLog) == 0 {
		return availabilityCall{}, false
	}
	return f.availabilityLog[len(f.availabilityLog)-1], true
}
