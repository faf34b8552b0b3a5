package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "overlap exclusion violation",
			err:  &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"},
			want: ErrDateConflict,
		},
		{
			name: "booking ref unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "bookings_booking_ref_key"},
			want: ErrRefTaken,
		},
		{
			name: "wrapped violation still maps",
			err:  fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}),
			want: ErrDateConflict,
		},
		{
			name: "unrelated unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "rooms_room_number_key"},
			want: nil,
		},
		{
			name: "non-postgres error",
			err:  errors.New("connection reset"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapConstraintError(tt.err))
		})
	}
}
