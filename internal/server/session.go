package server

import (
	"io"
	"log"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/habibiefaried/fountain-relay/internal/parser"
)

type Session struct {
	From          string
	To            []string
	authenticated bool
	backend       *Backend
}

func (s *Session) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

func (s *Session) Auth(mech string) (sasl.Server, error) {
	if mech != sasl.Plain {
		return nil, smtp.ErrAuthUnsupported
	}
	return sasl.NewPlainServer(func(identity, username, password string) error {
		if s.backend.Username != "" && (username != s.backend.Username || password != s.backend.Password) {
			return smtp.ErrAuthFailed
		}
		s.authenticated = true
		return nil
	}), nil
}

func (s *Session) Mail(from string, opts *smtp.MailOptions) error {
	if s.backend.Username != "" && !s.authenticated {
		return smtp.ErrAuthRequired
	}
	s.From = from
	return nil
}

func (s *Session) Rcpt(to string, opts *smtp.RcptOptions) error {
	s.To = append(s.To, to)
	return nil
}

func (s *Session) Data(r io.Reader) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	alert, err := parser.Parse(string(body))
	if err != nil {
		log.Printf("from: %s, to: %v, unparseable alert: %v", s.From, s.To, err)
		return err
	}
	// Envelope recipients include Bcc and are what the relay actually delivered to.
	alert.To = append([]string(nil), s.To...)
	log.Printf("from: %s, to: %v, subject: %q", s.From, s.To, alert.Subject)
	if s.backend.OnAlert != nil {
		s.backend.OnAlert(alert)
	}
	return nil
}

func (s *Session) Reset() {
	s.From = ""
	s.To = nil
}

func (s *Session) Logout() error {
	return nil
}
