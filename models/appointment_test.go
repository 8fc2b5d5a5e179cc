package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkCancelled(t *testing.T) {
	a := Appointment{BookingStatus: BookingBooked}
	require.NoError(t, a.MarkCancelled())
	assert.Equal(t, BookingCancelled, a.BookingStatus)

	// cancellation is terminal
	assert.ErrorIs(t, a.MarkCancelled(), ErrAlreadyCancelled)
	assert.ErrorIs(t, a.MarkCompleted(), ErrAlreadyCancelled)
	assert.ErrorIs(t, a.MarkPaid(), ErrAlreadyCancelled)
	assert.Equal(t, BookingCancelled, a.BookingStatus)
}

func TestMarkCompleted(t *testing.T) {
	a := Appointment{BookingStatus: BookingBooked}
	require.NoError(t, a.MarkCompleted())
	assert.Equal(t, BookingCompleted, a.BookingStatus)

	assert.ErrorIs(t, a.MarkCompleted(), ErrAlreadyCompleted)
	assert.ErrorIs(t, a.MarkCancelled(), ErrAlreadyCompleted)
}

func TestMarkPaid(t *testing.T) {
	a := Appointment{BookingStatus: BookingBooked, PaymentStatus: PaymentPending}
	require.NoError(t, a.MarkPaid())
	assert.Equal(t, PaymentPaid, a.PaymentStatus)
	assert.ErrorIs(t, a.MarkPaid(), ErrAlreadyPaid)

	// a completed appointment can still receive its payment
	a = Appointment{BookingStatus: BookingCompleted, PaymentStatus: PaymentPending}
	require.NoError(t, a.MarkPaid())
	assert.Equal(t, PaymentPaid, a.PaymentStatus)
}

func TestEarned(t *testing.T) {
	cases := []struct {
		name    string
		booking string
		payment string
		want    bool
	}{
		{"booked unpaid", BookingBooked, PaymentPending, false},
		{"completed unpaid", BookingCompleted, PaymentPending, true},
		{"booked paid", BookingBooked, PaymentPaid, true},
		{"completed paid", BookingCompleted, PaymentPaid, true},
		{"cancelled unpaid", BookingCancelled, PaymentPending, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Appointment{BookingStatus: tc.booking, PaymentStatus: tc.payment}
			assert.Equal(t, tc.want, a.Earned())
		})
	}
}

func TestSnapshots(t *testing.T) {
	user := User{Name: "Pat", Email: "pat@example.com", Phone: "555-0100",
		Address: Address{Line1: "1 Main St"}}
	snap := SnapshotUser(user)
	assert.Equal(t, user.Name, snap.Name)
	assert.Equal(t, user.Address.Line1, snap.Address.Line1)

	doctor := Doctor{Name: "Dr Who", Email: "who@example.com", Fees: 60,
		Speciality: "General physician"}
	dsnap := SnapshotDoctor(doctor)
	assert.Equal(t, doctor.Fees, dsnap.Fees)
	assert.Equal(t, doctor.Speciality, dsnap.Speciality)
}
