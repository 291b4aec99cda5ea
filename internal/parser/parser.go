package parser

import (
	"fmt"
	"strings"

	"github.com/jhillyerd/enmime"
)

// Alert is a delivered alert email reduced to the fields an operator reads.
type Alert struct {
	From       string
	To         []string
	Subject    string
	Date       string
	Body       string // Plain text body, empty for forwarded sensor lines
	RawContent string
}

// Parse decodes a raw RFC 5322 message. Encoded subjects and addresses are
// decoded; the body is reduced to plain text.
func Parse(rawContent string) (*Alert, error) {
	env, err := enmime.ReadEnvelope(strings.NewReader(rawContent))
	if err != nil {
		return nil, fmt.Errorf("parse alert: %w", err)
	}

	alert := &Alert{
		From:       env.GetHeader("From"),
		Subject:    env.GetHeader("Subject"),
		Date:       env.GetHeader("Date"),
		Body:       strings.TrimSpace(env.Text),
		RawContent: rawContent,
	}

	if addrs, err := env.AddressList("To"); err == nil {
		for _, a := range addrs {
			alert.To = append(alert.To, a.Address)
		}
	} else if to := env.GetHeader("To"); to != "" {
		for _, a := range strings.Split(to, ",") {
			alert.To = append(alert.To, strings.TrimSpace(a))
		}
	}

	return alert, nil
}
