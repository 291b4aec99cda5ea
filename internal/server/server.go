package server

import (
	"log"
	"time"

	"github.com/emersion/go-smtp"
)

// NewServer builds the sink SMTP server. Authentication is allowed without
// TLS because the sink is meant for a trusted bench network.
func NewServer(addr, domain string, be *Backend) *smtp.Server {
	s := smtp.NewServer(be)
	s.Addr = addr
	s.Domain = domain
	s.AllowInsecureAuth = true
	s.ReadTimeout = 30 * time.Second
	s.WriteTimeout = 30 * time.Second
	return s
}

func RunSMTPServer(addr, domain string, be *Backend) error {
	s := NewServer(addr, domain, be)

	log.Printf("Starting SMTP sink on %s\n", s.Addr)
	log.Printf("Domain: %s\n", domain)

	return s.ListenAndServe()
}
