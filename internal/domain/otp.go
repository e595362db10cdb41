package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/diagnosis/parkingpro/internal/utils"
)

const (
	MinOTPCode = 100000
	MaxOTPCode = 999999
)

// OTPCode accepts the code as a JSON number or a string. Numbers are
// truncated toward zero; strings are read up to the first non-digit after an
// optional sign, so "123456 " and "123456.0" both give 123456. Input with no
// leading digits becomes InvalidOTPCode, which never matches an issued code.
type OTPCode int

const InvalidOTPCode OTPCode = -1

func (c *OTPCode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = InvalidOTPCode
		return nil
	}

	if b[0] != '"' {
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			*c = InvalidOTPCode
			return nil
		}
		if math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
			*c = InvalidOTPCode
			return nil
		}
		*c = OTPCode(int(f))
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	n, ok := leadingInt(raw)
	if !ok {
		*c = InvalidOTPCode
		return nil
	}
	*c = OTPCode(n)
	return nil
}

// leadingInt parses the signed digit run at the start of s, after leading
// whitespace.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' && end-digits < 10 {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

type OTPRequest struct {
	Email string `json:"email"`
}

type OTPVerifyRequest struct {
	Email string  `json:"email"`
	OTP   OTPCode `json:"otp"`
}

func (r *OTPRequest) Normalize() {
	r.Email = utils.NormalizeEmail(r.Email)
}

func (r *OTPRequest) Validate() error {
	if r.Email == "" {
		return NewValidationError(MsgFieldsRequired)
	}
	if !utils.IsValidEmail(r.Email) {
		return NewValidationError(MsgInvalidEmail)
	}
	return nil
}

func (r *OTPVerifyRequest) Normalize() {
	r.Email = utils.NormalizeEmail(r.Email)
}

func (r *OTPVerifyRequest) Validate() error {
	if r.Email == "" {
		return NewValidationError(MsgFieldsRequired)
	}
	return nil
}
