package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/diagnosis/parkingpro/internal/utils"
)

type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
	// BookingExpired is part of the stored vocabulary but nothing writes it.
	// Expiry is derived from ExpiryTime when bookings are read.
	BookingExpired BookingStatus = "expired"
)

// Booking pairs a user with a slot for a time window. Nothing stops two
// active bookings from holding the same slot over overlapping windows.
type Booking struct {
	ID         string        `json:"id"`
	User       string        `json:"user"`
	Slot       string        `json:"slot"`
	StartTime  time.Time     `json:"startTime"`
	ExpiryTime time.Time     `json:"expiryTime"`
	Status     BookingStatus `json:"status"`
}

// IsActive reports whether the booking still holds its slot at now.
func (b *Booking) IsActive(now time.Time) bool {
	return b.Status == BookingActive && b.ExpiryTime.After(now)
}

// BookSlotRequest takes startTime and expiryTime as RFC 3339 strings,
// date-only strings or epoch milliseconds.
type BookSlotRequest struct {
	User       string    `json:"user"`
	Slot       string    `json:"slot"`
	StartTime  time.Time `json:"startTime"`
	ExpiryTime time.Time `json:"expiryTime"`

	badTime bool
}

func (r *BookSlotRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		User       string          `json:"user"`
		Slot       string          `json:"slot"`
		StartTime  json.RawMessage `json:"startTime"`
		ExpiryTime json.RawMessage `json:"expiryTime"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var startOK, expiryOK bool
	r.User, r.Slot = raw.User, raw.Slot
	r.StartTime, startOK = parseBookingTime(raw.StartTime)
	r.ExpiryTime, expiryOK = parseBookingTime(raw.ExpiryTime)
	r.badTime = !startOK || !expiryOK
	return nil
}

var bookingTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseBookingTime returns the zero time and ok=true for an absent value so
// that presence is checked separately.
func parseBookingTime(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, true
	}

	if raw[0] != '"' {
		var ms float64
		if err := json.Unmarshal(raw, &ms); err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)).UTC(), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	s = utils.NormalizeString(s)
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range bookingTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (r *BookSlotRequest) Normalize() {
	r.User = utils.NormalizeString(r.User)
	r.Slot = utils.NormalizeString(r.Slot)
}

func (r *BookSlotRequest) Validate() error {
	if r.badTime {
		return NewValidationError(MsgInvalidDate)
	}
	if r.User == "" || r.Slot == "" || r.StartTime.IsZero() || r.ExpiryTime.IsZero() {
		return NewValidationError(MsgFieldsRequired)
	}
	return nil
}

type CancelBookingRequest struct {
	User string `json:"user"`
	Slot string `json:"slot"`
}

func (r *CancelBookingRequest) Normalize() {
	r.User = utils.NormalizeString(r.User)
	r.Slot = utils.NormalizeString(r.Slot)
}

func (r *CancelBookingRequest) Validate() error {
	if r.User == "" || r.Slot == "" {
		return NewValidationError(MsgFieldsRequired)
	}
	return nil
}

type BookingHistoryRequest struct {
	User string `json:"user"`
}

func (r *BookingHistoryRequest) Normalize() {
	r.User = utils.NormalizeString(r.User)
}

func (r *BookingHistoryRequest) Validate() error {
	if r.User == "" {
		return NewValidationError(MsgFieldsRequired)
	}
	return nil
}
