package timeline

import (
	"fmt"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// OnlineStatus narrates, for each adjacent snapshot pair, whether the resident was online in between
func OnlineStatus(snapshots []domain.Snapshot, id string) []string {
	return ScanPairs(snapshots, func(a, b domain.Snapshot) string {
		return compareLastOnline(lastOnline(a, id), lastOnline(b, id), DataFrom(b))
	})
}

func lastOnline(s domain.Snapshot, id string) *int64 {
	r, ok := s.Resident(id)
	if !ok {
		return nil
	}
	return r.LastOnline
}

func compareLastOnline(a, b *int64, annotation string) string {
	switch {
	case a == nil && b == nil:
		return fmt.Sprintf("%s User has not yet joined the server. (%s)", MarkerNotJoined, annotation)
	case a == nil:
		return fmt.Sprintf("%s User has joined the server for the first time and was last online at %s. (%s)",
			MarkerFirstJoin, Timestamp(MillisToSeconds(*b)), annotation)
	case b != nil && *a != *b:
		return fmt.Sprintf("%s User was online at %s. (%s)", MarkerOnline, Timestamp(MillisToSeconds(*b)), annotation)
	default:
		return fmt.Sprintf("%s User was NOT online. (%s)", MarkerOffline, annotation)
	}
}
