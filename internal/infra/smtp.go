package infra

import (
	"fmt"
	"net/smtp"

	"github.com/Sabogal22/Sistema-de-inventario/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending alert emails. All sends go
// through a circuit breaker so a dead SMTP server does not stall the worker
// pool with connection timeouts on every job.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
	cb       *CircuitBreaker
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		cb:       NewCircuitBreaker(DefaultCBConfig()),
	}
}

// SendAlert sends a plain-text alert email to a single recipient.
func (m *Mailer) SendAlert(to, subject, body string) error {
	return m.cb.Execute(func() error {
		e := email.NewEmail()
		e.From = m.user
		e.To = []string{to}
		e.Subject = subject
		e.Text = []byte(body)

		auth := smtp.PlainAuth("", m.user, m.password, m.host)
		return e.Send(m.addr, auth)
	})
}

// CircuitState exposes the breaker state for the health endpoint.
func (m *Mailer) CircuitState() string {
	return m.cb.State().String()
}
