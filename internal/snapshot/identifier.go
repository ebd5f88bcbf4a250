package snapshot

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// identifierPattern matches the YYYYMMDD_HHMMSS stamp embedded in backup filenames
var identifierPattern = regexp.MustCompile(`\d{8}_\d{6}`)

// ParseIdentifier extracts the capture time embedded in a snapshot identifier, in epoch seconds.
// The stamp is read as wall-clock time in loc.
func ParseIdentifier(identifier string, loc *time.Location) (int64, error) {
	stamp := identifierPattern.FindString(identifier)
	if stamp == "" {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, identifier)
	}

	// The pattern guarantees every slice is all digits
	component := func(from, to int) int {
		n, _ := strconv.Atoi(stamp[from:to])
		return n
	}

	t := time.Date(
		component(0, 4),
		time.Month(component(4, 6)),
		component(6, 8),
		component(9, 11),
		component(11, 13),
		component(13, 15),
		0,
		loc,
	)

	return t.Unix(), nil
}
