// Package domain implements the typestate entity model (§4.B): typed
// aggregates for Company, Project, Task, Resource, and Config, each
// exposing only its state-legal transitions. Cross-entity checks (does a
// referenced code exist, is a predecessor really Done) are deliberately
// left to internal/validate and internal/usecase — domain only enforces
// what a single aggregate can know about itself.
package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID mints a stable, globally unique, time-sortable identifier. UUIDv7
// embeds a millisecond timestamp in its high bits, which is what §3.1 means
// by "time-ordered opaque token": two IDs minted in sequence sort in
// creation order as plain strings.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the process-wide entropy pool is broken;
		// fall back to a random v4 rather than panic mid-command.
		return uuid.NewString()
	}
	return id.String()
}

// Now is overridable by tests, matching the teacher engine's e.Now hook.
var Now = func() time.Time { return time.Now().UTC() }

func timestamp() string { return Now().Format(time.RFC3339) }

var codeSanitizer = regexp.MustCompile(`[^A-Z0-9]+`)

// GenerateCode derives an upper-snake code from a display name, per §3.3's
// "upper-snake of first tokens" rule. Collisions are resolved by the
// use-case layer (internal/usecase's disambiguate*Code), which appends
// "-2", "-3", ... via WithSuffix.
func GenerateCode(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	code := codeSanitizer.ReplaceAllString(upper, "-")
	code = strings.Trim(code, "-")
	if code == "" {
		code = "ITEM"
	}
	return code
}

// WithSuffix appends a numeric collision suffix, e.g. WithSuffix("X", 2) -> "X-2".
func WithSuffix(code string, n int) string {
	if n <= 1 {
		return code
	}
	return code + "-" + strconv.Itoa(n)
}
