package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMapUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "active slot",
			err:  &pq.Error{Code: pgUniqueViolation, Constraint: constraintActiveSlot},
			want: ErrSlotTaken,
		},
		{
			name: "primary key",
			err:  &pq.Error{Code: pgUniqueViolation, Constraint: constraintPrimaryKey},
			want: ErrDuplicateBookingID,
		},
		{
			name: "wrapped",
			err:  fmt.Errorf("insert: %w", &pq.Error{Code: pgUniqueViolation, Constraint: constraintActiveSlot}),
			want: ErrSlotTaken,
		},
		{
			name: "unknown constraint",
			err:  &pq.Error{Code: pgUniqueViolation, Constraint: "other"},
		},
		{
			name: "other code",
			err:  &pq.Error{Code: "23503", Constraint: constraintActiveSlot},
		},
		{
			name: "not a pq error",
			err:  errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapUniqueViolation(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
