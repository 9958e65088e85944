package notify

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/azulroute/tour-booking-api/internal/model"
)

// Mailer sends transactional email over SMTP. It is config-gated: when the
// credentials are absent, Enabled reports false and every send returns an
// error that callers log and move past.
type Mailer struct {
	host       string
	port       string
	username   string
	password   string
	fromEmail  string
	fromName   string
	adminEmail string
}

// NewMailer constructs a Mailer from SMTP settings. Empty credentials yield
// a disabled mailer.
func NewMailer(host, port, username, password, fromEmail, fromName, adminEmail string) *Mailer {
	return &Mailer{
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		fromEmail:  fromEmail,
		fromName:   fromName,
		adminEmail: adminEmail,
	}
}

// Enabled reports whether credentials were configured.
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.username != "" && m.password != ""
}

// SendReservationConfirmation emails the guest that the booking was received
// and is awaiting confirmation.
func (m *Mailer) SendReservationConfirmation(ev ReservationCreatedEvent) error {
	subject := fmt.Sprintf("Booking received: %s on %s", ev.TourName, ev.Date)
	body := fmt.Sprintf(`Hello %s,

Thank you for booking with us! We have received your reservation:

  Tour:         %s
  Date:         %s
  Participants: %d
  Total paid:   %.2f EUR

Your booking reference is #%d. We will confirm pickup details by email
shortly. If anything changes, just reply to this message.

See you soon,
%s`, ev.Name, ev.TourName, ev.Date, ev.Participants, ev.TotalPrice, ev.ReservationID, m.fromName)

	return m.send(ev.Email, subject, body)
}

// SendAdminNotification tells the operator a new paid booking arrived.
func (m *Mailer) SendAdminNotification(ev ReservationCreatedEvent) error {
	if m.adminEmail == "" {
		return fmt.Errorf("admin email not configured")
	}
	subject := fmt.Sprintf("New booking #%d: %s on %s", ev.ReservationID, ev.TourName, ev.Date)
	body := fmt.Sprintf(`New reservation:

  Reference:    #%d
  Tour:         %s (%s)
  Date:         %s
  Participants: %d
  Total:        %.2f EUR
  Guest:        %s <%s> %s
  Message:      %s`, ev.ReservationID, ev.TourName, ev.TourID, ev.Date, ev.Participants,
		ev.TotalPrice, ev.Name, ev.Email, ev.Phone, ev.Message)

	return m.send(m.adminEmail, subject, body)
}

// SendReminder emails the guest two days before the tour date.
func (m *Mailer) SendReminder(r *model.Reservation) error {
	subject := fmt.Sprintf("Your tour is coming up: %s on %s", r.TourName, r.Date.Format("2006-01-02"))
	body := fmt.Sprintf(`Hello %s,

A quick reminder that your tour is in two days:

  Tour:         %s
  Date:         %s
  Participants: %d

Please have your booking reference #%d ready. Reply to this email if you
need to adjust your pickup details.

See you soon,
%s`, r.Name, r.TourName, r.Date.Format("2006-01-02"), r.Participants, r.ID, m.fromName)

	return m.send(r.Email, subject, body)
}

// send delivers one plain-text message over SMTP.
func (m *Mailer) send(to, subject, body string) error {
	if !m.Enabled() {
		return fmt.Errorf("email credentials not configured")
	}
	from := m.fromEmail
	if from == "" {
		from = m.username
	}
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		m.fromName, from, to, subject, body))

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, from, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("notify: sent %q to %s", subject, to)
	return nil
}
