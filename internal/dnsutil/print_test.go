package dnsutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintRelayRecords_FailedRecipientDomain(t *testing.T) {
	var buf bytes.Buffer
	ok := PrintRelayRecords(&buf, "localhost", []string{
		"a@invalid-domain-xyz-9999.test",
		"b@invalid-domain-xyz-9999.test",
	})
	if ok {
		t.Fatal("PrintRelayRecords should report failure for an unresolvable recipient domain")
	}

	out := buf.String()
	if !strings.Contains(out, "VERIFICATION FAILED") {
		t.Errorf("report missing failure banner:\n%s", out)
	}
	if strings.Count(out, "invalid-domain-xyz-9999.test") != 1 {
		t.Errorf("recipient domains should be deduplicated:\n%s", out)
	}
	if !strings.Contains(out, "A      | localhost") {
		t.Errorf("report missing relay row:\n%s", out)
	}
}
