package dnsutil

import (
	"fmt"
	"io"
	"strings"
)

// PrintRelayRecords writes a lookup report for the mail relay and each
// recipient domain. The report is advisory; it returns false when any lookup
// failed so the caller can log a warning.
func PrintRelayRecords(w io.Writer, relay string, recipients []string) bool {
	allOK := true

	aOK, aStatus := CheckARecord(relay)
	if !aOK {
		allOK = false
	}

	type row struct{ domain, status string }
	var rows []row
	seen := make(map[string]bool)
	for _, rcpt := range recipients {
		domain := RecipientDomain(rcpt)
		if domain == "" || seen[domain] {
			continue
		}
		seen[domain] = true
		ok, status := CheckMXRecord(domain)
		if !ok {
			allOK = false
		}
		rows = append(rows, row{domain, status})
	}

	title := "RELAY RECORDS VERIFICATION"
	if !allOK {
		title = "RELAY RECORDS VERIFICATION FAILED (alerts may not be delivered)"
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 100))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 100))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TYPE   | NAME                      | STATUS")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	fmt.Fprintf(w, "A      | %-25s | %s\n", relay, aStatus)
	for _, r := range rows {
		fmt.Fprintf(w, "MX     | %-25s | %s\n", r.domain, r.status)
	}
	fmt.Fprintln(w, strings.Repeat("=", 100)+"\n")
	return allOK
}
