package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPCodeAcceptsNumberAndString(t *testing.T) {
	tests := []struct {
		name string
		body string
		want OTPCode
	}{
		{"number", `{"email":"a@b.co","otp":123456}`, 123456},
		{"string", `{"email":"a@b.co","otp":"654321"}`, 654321},
		{"padded string", `{"email":"a@b.co","otp":" 111111 "}`, 111111},
		{"letters", `{"email":"a@b.co","otp":"abc"}`, InvalidOTPCode},
		{"null", `{"email":"a@b.co","otp":null}`, InvalidOTPCode},
		{"fraction", `{"email":"a@b.co","otp":1.5}`, 1},
		{"whole float", `{"email":"a@b.co","otp":123456.0}`, 123456},
		{"decimal string", `{"email":"a@b.co","otp":"123456.0"}`, 123456},
		{"trailing junk", `{"email":"a@b.co","otp":"123456abc"}`, 123456},
		{"trailing space", `{"email":"a@b.co","otp":"123456 "}`, 123456},
		{"empty string", `{"email":"a@b.co","otp":""}`, InvalidOTPCode},
		{"bare sign", `{"email":"a@b.co","otp":"-"}`, InvalidOTPCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req OTPVerifyRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.OTP)
		})
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Fullname: "Alice A", Username: "alice", Email: " Alice@Example.com ",
		Password: "pw", ConfirmPassword: "pw",
	}

	req := valid
	req.Normalize()
	assert.Equal(t, "alice@example.com", req.Email)
	assert.NoError(t, req.Validate())

	missing := valid
	missing.Fullname = "   "
	missing.Normalize()
	err := missing.Validate()
	assert.Equal(t, KindValidation, KindOf(err))
	assert.EqualError(t, err, MsgFieldsRequired)

	mismatch := valid
	mismatch.ConfirmPassword = "other"
	err = mismatch.Validate()
	assert.Equal(t, KindValidation, KindOf(err))
	assert.EqualError(t, err, MsgPasswordMismatch)
}

func TestOTPRequestValidate(t *testing.T) {
	req := OTPRequest{Email: "  "}
	req.Normalize()
	assert.EqualError(t, req.Validate(), MsgFieldsRequired)

	req = OTPRequest{Email: "nope"}
	req.Normalize()
	assert.EqualError(t, req.Validate(), MsgInvalidEmail)

	req = OTPRequest{Email: "Bob@Example.com"}
	req.Normalize()
	assert.NoError(t, req.Validate())
	assert.Equal(t, "bob@example.com", req.Email)
}

func TestBookingIsActive(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := Booking{Status: BookingActive, ExpiryTime: now.Add(time.Minute)}
	assert.True(t, b.IsActive(now))

	b.ExpiryTime = now
	assert.False(t, b.IsActive(now), "expiry equal to now is no longer active")

	b = Booking{Status: BookingCancelled, ExpiryTime: now.Add(time.Hour)}
	assert.False(t, b.IsActive(now))
}

func TestBookSlotRequestValidate(t *testing.T) {
	now := time.Now()
	req := BookSlotRequest{User: " alice ", Slot: "A1", StartTime: now, ExpiryTime: now.Add(time.Hour)}
	req.Normalize()
	assert.Equal(t, "alice", req.User)
	assert.NoError(t, req.Validate())

	req.ExpiryTime = time.Time{}
	assert.EqualError(t, req.Validate(), MsgFieldsRequired)
}

func TestBookSlotRequestParsesTimeForms(t *testing.T) {
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value string
	}{
		{"rfc3339", `"2025-06-01T00:00:00Z"`},
		{"offset", `"2025-06-01T02:00:00+02:00"`},
		{"no zone", `"2025-06-01T00:00:00"`},
		{"date only", `"2025-06-01"`},
		{"epoch millis", fmt.Sprint(want.UnixMilli())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"user":"alice","slot":"A1","startTime":` + tt.value + `,"expiryTime":` + tt.value + `}`
			var req BookSlotRequest
			require.NoError(t, json.Unmarshal([]byte(body), &req))
			assert.True(t, want.Equal(req.StartTime), req.StartTime)
			assert.True(t, want.Equal(req.ExpiryTime), req.ExpiryTime)
			assert.NoError(t, req.Validate())
		})
	}
}

func TestBookSlotRequestRejectsBadTime(t *testing.T) {
	var req BookSlotRequest
	require.NoError(t, json.Unmarshal([]byte(`{"user":"alice","slot":"A1","startTime":"tomorrow","expiryTime":"2025-06-01"}`), &req))
	assert.EqualError(t, req.Validate(), MsgInvalidDate)
	assert.Equal(t, KindValidation, KindOf(req.Validate()))

	req = BookSlotRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"user":"alice","slot":"A1","startTime":"","expiryTime":null}`), &req))
	assert.EqualError(t, req.Validate(), MsgFieldsRequired)
}

func TestCancelAndHistoryRequestsTrimInput(t *testing.T) {
	cancel := CancelBookingRequest{User: " alice ", Slot: "\tA1"}
	cancel.Normalize()
	assert.Equal(t, "alice", cancel.User)
	assert.Equal(t, "A1", cancel.Slot)
	assert.NoError(t, cancel.Validate())

	blank := CancelBookingRequest{User: "  ", Slot: "A1"}
	blank.Normalize()
	assert.EqualError(t, blank.Validate(), MsgFieldsRequired)

	history := BookingHistoryRequest{User: "   "}
	history.Normalize()
	assert.EqualError(t, history.Validate(), MsgFieldsRequired)
}

func TestErrorKindsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("verify: %w", ErrOTPExpired)
	assert.True(t, errors.Is(wrapped, ErrOTPExpired))
	assert.False(t, errors.Is(wrapped, ErrOTPNotFound))
	assert.Equal(t, KindExpired, KindOf(wrapped))

	assert.Equal(t, KindServer, KindOf(errors.New("boom")))

	dup := fmt.Errorf("insert: %w", &DuplicateKeyError{Field: "email"})
	assert.ErrorIs(t, dup, ErrDuplicate)
	var dk *DuplicateKeyError
	require.True(t, errors.As(dup, &dk))
	assert.Equal(t, "email", dk.Field)
}
