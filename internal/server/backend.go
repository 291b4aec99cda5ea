package server

import (
	"github.com/emersion/go-smtp"
	"github.com/habibiefaried/fountain-relay/internal/parser"
)

// Backend accepts alert mail. When Username is set, sessions must
// authenticate with Username/Password before MAIL FROM is accepted.
type Backend struct {
	Username string
	Password string
	OnAlert  func(*parser.Alert)
}

func (bkd *Backend) NewSession(conn *smtp.Conn) (smtp.Session, error) {
	return &Session{backend: bkd}, nil
}
