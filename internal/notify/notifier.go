package notify

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/mail"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/habibiefaried/fountain-relay/internal/config"
	"github.com/jhillyerd/enmime"
)

// Kind classifies where in the delivery path a notification failed.
type Kind string

const (
	KindCompose Kind = "compose"
	KindConnect Kind = "connect"
	KindTLS     Kind = "tls"
	KindAuth    Kind = "auth"
	KindSend    Kind = "send"
)

// EmptySubject replaces the subject for blank lines; the relay and the
// composer both reject an empty Subject header.
const EmptySubject = "(empty message)"

// Notifier delivers one alert per call.
type Notifier interface {
	Send(recipients []string, subject string) error
}

// NotificationError is the only error type returned by SMTPNotifier.Send.
type NotificationError struct {
	Kind Kind
	Err  error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification %s: %v", e.Kind, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// SMTPNotifier sends each alert over a fresh SMTP session.
type SMTPNotifier struct {
	cfg config.SMTPConfig
}

// NewSMTPNotifier creates a new SMTPNotifier.
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

// Send composes a message with the given subject and an empty body and
// delivers it to every recipient. The connection is closed before returning.
func (n *SMTPNotifier) Send(recipients []string, subject string) error {
	msg, rcpts, err := Compose(n.cfg.From, recipients, subject)
	if err != nil {
		return &NotificationError{Kind: KindCompose, Err: err}
	}
	from, err := mail.ParseAddress(n.cfg.From)
	if err != nil {
		return &NotificationError{Kind: KindCompose, Err: err}
	}

	c, err := n.dial()
	if err != nil {
		return err
	}
	sent := false
	defer func() {
		// Quit already closed the connection on success.
		if !sent {
			c.Close()
		}
	}()

	if err := c.Hello(n.cfg.Helo); err != nil {
		return &NotificationError{Kind: KindConnect, Err: err}
	}

	if n.cfg.Username != "" {
		auth := sasl.NewPlainClient("", n.cfg.Username, n.cfg.Password)
		if err := c.Auth(auth); err != nil {
			return &NotificationError{Kind: KindAuth, Err: err}
		}
	}

	if err := c.SendMail(from.Address, rcpts, bytes.NewReader(msg)); err != nil {
		return &NotificationError{Kind: KindSend, Err: err}
	}

	// The relay has accepted the message at this point.
	sent = true
	if err := c.Quit(); err != nil {
		log.Printf("notify: quit %s: %v", n.cfg.Addr(), err)
	}
	return nil
}

func (n *SMTPNotifier) dial() (*smtp.Client, error) {
	dialer := &net.Dialer{Timeout: n.cfg.DialTimeout}
	conn, err := dialer.Dial("tcp", n.cfg.Addr())
	if err != nil {
		return nil, &NotificationError{Kind: KindConnect, Err: err}
	}

	var c *smtp.Client
	switch n.cfg.Security {
	case config.SecurityTLS:
		tlsConn, err := n.handshake(conn)
		if err != nil {
			conn.Close()
			return nil, &NotificationError{Kind: KindTLS, Err: err}
		}
		c = smtp.NewClient(tlsConn)
	case config.SecurityStartTLS:
		if n.cfg.DialTimeout > 0 {
			if err := conn.SetDeadline(time.Now().Add(n.cfg.DialTimeout)); err != nil {
				conn.Close()
				return nil, &NotificationError{Kind: KindConnect, Err: err}
			}
		}
		c, err = smtp.NewClientStartTLS(conn, n.tlsConfig())
		if err != nil {
			conn.Close()
			return nil, &NotificationError{Kind: KindTLS, Err: fmt.Errorf("starttls with %s: %w", n.cfg.Addr(), err)}
		}
		if err := conn.SetDeadline(time.Time{}); err != nil {
			c.Close()
			return nil, &NotificationError{Kind: KindConnect, Err: err}
		}
	default:
		c = smtp.NewClient(conn)
	}

	if n.cfg.CommandTimeout > 0 {
		c.CommandTimeout = n.cfg.CommandTimeout
		c.SubmissionTimeout = n.cfg.CommandTimeout
	}
	return c, nil
}

// handshake upgrades conn for implicit TLS, bounded by the dial timeout.
func (n *SMTPNotifier) handshake(conn net.Conn) (*tls.Conn, error) {
	tlsConn := tls.Client(conn, n.tlsConfig())
	if n.cfg.DialTimeout > 0 {
		if err := tlsConn.SetDeadline(time.Now().Add(n.cfg.DialTimeout)); err != nil {
			return nil, err
		}
	}
	if err := tlsConn.Handshake(); err != nil {
		return nil, err
	}
	if err := tlsConn.SetDeadline(time.Time{}); err != nil {
		return nil, err
	}
	return tlsConn, nil
}

func (n *SMTPNotifier) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         n.cfg.Host,
		InsecureSkipVerify: n.cfg.InsecureSkipVerify,
	}
}

// Compose builds the RFC 5322 message for an alert and returns it together
// with the bare envelope recipient addresses.
func Compose(from string, recipients []string, subject string) ([]byte, []string, error) {
	sender, err := mail.ParseAddress(from)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if len(recipients) == 0 {
		return nil, nil, fmt.Errorf("no recipients")
	}

	to := make([]mail.Address, 0, len(recipients))
	rcpts := make([]string, 0, len(recipients))
	for _, r := range recipients {
		addr, err := mail.ParseAddress(r)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid recipient %q: %w", r, err)
		}
		to = append(to, *addr)
		rcpts = append(rcpts, addr.Address)
	}

	if subject == "" {
		subject = EmptySubject
	}

	part, err := enmime.Builder().
		From(sender.Name, sender.Address).
		ToAddrs(to).
		Subject(subject).
		Date(time.Now()).
		Text([]byte{}).
		Build()
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := part.Encode(&buf); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), rcpts, nil
}
