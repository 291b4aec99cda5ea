package dnsutil

import (
	"fmt"
	"net"
	"strings"
)

// CheckARecord reports whether host resolves to at least one address.
func CheckARecord(host string) (bool, string) {
	if net.ParseIP(host) != nil {
		return true, "✓ OK (literal)"
	}
	ips, err := net.LookupHost(host)
	if err != nil || len(ips) == 0 {
		return false, "✗ FAILED (not found)"
	}
	return true, fmt.Sprintf("✓ OK (%s)", strings.Join(ips, ", "))
}

// CheckMXRecord reports whether domain publishes at least one MX host.
func CheckMXRecord(domain string) (bool, string) {
	mxRecords, err := net.LookupMX(domain)
	if err != nil || len(mxRecords) == 0 {
		return false, "✗ FAILED (not found)"
	}
	var hosts []string
	for _, mx := range mxRecords {
		hosts = append(hosts, strings.TrimSuffix(mx.Host, "."))
	}
	return true, fmt.Sprintf("✓ OK (%s)", strings.Join(hosts, ", "))
}
