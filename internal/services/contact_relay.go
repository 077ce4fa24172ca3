package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"remontzbt.dev/internal/models"
)

// ErrRelayUnavailable is returned while the relay circuit is open
var ErrRelayUnavailable = errors.New("contact relay unavailable")

// SendMailFunc matches smtp.SendMail
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSubmitter relays contact tickets to the business inbox by e-mail
type SMTPSubmitter struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	send     SendMailFunc
}

// NewSMTPSubmitter creates an SMTPSubmitter that sends through net/smtp
func NewSMTPSubmitter(host string, port int, username, password, from, to string) *SMTPSubmitter {
	return &SMTPSubmitter{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
		send:     smtp.SendMail,
	}
}

// Submit implements Submitter
func (s *SMTPSubmitter) Submit(ctx context.Context, ticket models.ContactTicket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Host == "" || s.To == "" {
		return fmt.Errorf("smtp relay is not configured")
	}

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	addr := net.JoinHostPort(s.Host, fmt.Sprint(s.Port))
	if err := s.send(addr, auth, s.From, []string{s.To}, s.message(ticket)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (s *SMTPSubmitter) message(ticket models.ContactTicket) []byte {
	f := ticket.Form
	var b strings.Builder
	b.WriteString("Subject: " + mime.BEncoding.Encode("UTF-8", headerSafe("Заявка с сайта: "+f.Name)) + "\r\n")
	b.WriteString("From: " + s.From + "\r\n")
	b.WriteString("To: " + s.To + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(f.Email) + "\r\n")
	b.WriteString("X-Ticket-Id: " + ticket.ID + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString("<p><b>Имя:</b> " + html.EscapeString(headerSafe(f.Name)) + "</p>\r\n")
	b.WriteString("<p><b>Email:</b> " + html.EscapeString(headerSafe(f.Email)) + "</p>\r\n")
	if f.Phone != "" {
		b.WriteString("<p><b>Телефон:</b> " + html.EscapeString(headerSafe(f.Phone)) + "</p>\r\n")
	}
	b.WriteString("<p>" + strings.ReplaceAll(html.EscapeString(f.Message), "\n", "<br>") + "</p>\r\n")
	return []byte(b.String())
}

// headerSafe strips line breaks so form values cannot inject headers
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// BreakerSubmitter stops calling a failing submitter for a while
type BreakerSubmitter struct {
	next Submitter
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerSubmitter wraps next in a circuit breaker that opens after
// maxFailures consecutive failures and half-opens after timeout.
func NewBreakerSubmitter(next Submitter, maxFailures uint32, timeout time.Duration, log logrus.FieldLogger) *BreakerSubmitter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "contact-relay",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state changed")
		},
	})
	return &BreakerSubmitter{next: next, cb: cb}
}

// Submit implements Submitter
func (b *BreakerSubmitter) Submit(ctx context.Context, ticket models.ContactTicket) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Submit(ctx, ticket)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrRelayUnavailable, err)
	}
	return err
}

// State reports the breaker state
func (b *BreakerSubmitter) State() gobreaker.State {
	return b.cb.State()
}
