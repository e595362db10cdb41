package mailer

import (
	"context"
	"fmt"
)

type Service interface {
	Send(ctx context.Context, toEmail, toName, subject, text, html string) (string, error)
	SendOTP(ctx context.Context, email string, code int) error
}

const otpSubject = "Your OTP Code"

func otpBodies(code int) (text, html string) {
	text = fmt.Sprintf("Your OTP for verification is: %d", code)
	html = fmt.Sprintf(`<p>Your OTP for verification is: <b>%d</b></p><p>It expires in 5 minutes.</p>`, code)
	return text, html
}

// sendOTP is shared by every Service implementation.
func sendOTP(ctx context.Context, s Service, email string, code int) error {
	text, html := otpBodies(code)
	_, err := s.Send(ctx, email, "", otpSubject, text, html)
	return err
}
