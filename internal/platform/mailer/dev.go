package mailer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/diagnosis/parkingpro/pkg/logger"
)

// DevMailer prints mail to the log and an output stream instead of sending it.
type DevMailer struct {
	out io.Writer
}

func NewDevMailer() *DevMailer {
	return &DevMailer{out: os.Stdout}
}

func (d *DevMailer) Send(ctx context.Context, toEmail, toName, subject, text, html string) (string, error) {
	logger.InfoContext(ctx, "[DEV MAIL] email",
		"to", toEmail,
		"name", toName,
		"subject", subject,
	)

	fmt.Fprintf(d.out, "\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"EMAIL (DEV MODE)\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"To: %s\n"+
		"Subject: %s\n"+
		"\n"+
		"%s\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n",
		toEmail, subject, text)

	return "dev", nil
}

func (d *DevMailer) SendOTP(ctx context.Context, email string, code int) error {
	return sendOTP(ctx, d, email, code)
}

var _ Service = (*DevMailer)(nil)
