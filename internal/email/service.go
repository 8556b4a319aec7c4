package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/booking-api/internal/config"
	"github.com/jwalitptl/booking-api/internal/model"
)

type Service interface {
	SendBookingConfirmation(booking *model.Booking) error
}

// NewService returns a gomail-backed sender, or a no-op sender when
// SMTP is not configured.
func NewService(cfg config.SMTPConfig) Service {
	if cfg.Host == "" {
		return &noopService{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpService) SendBookingConfirmation(booking *model.Booking) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", booking.Patient)
	m.SetHeader("Subject", fmt.Sprintf("Your booking for %s on %s is confirmed", booking.Treatment, booking.Date))
	m.SetBody("text/plain", fmt.Sprintf(
		"Your appointment for %s on %s at %s is confirmed.\n\nPlease arrive 10 minutes early.",
		booking.Treatment, booking.Date, booking.Slot,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

type noopService struct{}

func (n *noopService) SendBookingConfirmation(*model.Booking) error {
	return nil
}
