package storage

import (
	"fmt"

	"github.com/google/uuid"
)

// backfillNamespace scopes the deterministic IDs given to imported entries.
var backfillNamespace = uuid.MustParse("5b0e6f2c-8d39-4c1b-9a57-3f3d2e6c9a10")

// NewID returns a time-ordered UUIDv7 string.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// BackfillID derives a stable ID for an entry read back from a log file, so
// importing the same file twice yields the same IDs.
func BackfillID(lineNo int, e Entry) string {
	key := fmt.Sprintf("%d|%s", lineNo, FormatEntry(e))
	return uuid.NewSHA1(backfillNamespace, []byte(key)).String()
}
