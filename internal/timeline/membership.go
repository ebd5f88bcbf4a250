package timeline

import (
	"fmt"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// membership is a resident's town state in one snapshot.
// An absent resident has the sentinel town and a zero join time.
type membership struct {
	town     domain.TownRef
	joinTime int64
}

func membershipOf(s domain.Snapshot, id string) membership {
	r, ok := s.Resident(id)
	if !ok {
		return membership{town: domain.ZeroTown()}
	}
	return membership{town: r.Town, joinTime: r.TownJoinTime}
}

// TownMembership narrates the resident's initial town followed by one line per adjacent snapshot pair
func TownMembership(snapshots []domain.Snapshot, id string) []string {
	initial, ok := ScanFirst(snapshots, func(first domain.Snapshot, _ *domain.Snapshot) string {
		return describeInitialTown(membershipOf(first, id), DataFrom(first))
	})
	if !ok {
		return []string{}
	}

	pairs := ScanPairs(snapshots, func(a, b domain.Snapshot) string {
		return compareMembership(membershipOf(a, id), membershipOf(b, id), DataFrom(b))
	})

	return append([]string{initial}, pairs...)
}

func describeInitialTown(m membership, annotation string) string {
	switch {
	case m.town.IsZero():
		return fmt.Sprintf("%s User has not yet joined the server. (%s)", MarkerNotJoined, annotation)
	case m.town.IsNone():
		return fmt.Sprintf("%s User had no town. (%s)", MarkerNoTown, annotation)
	default:
		return fmt.Sprintf("%s User joined town `%s` at %s. (%s)",
			MarkerJoinedTown, m.town, Timestamp(MillisToSeconds(m.joinTime)), annotation)
	}
}

func compareMembership(a, b membership, annotation string) string {
	switch {
	case a.joinTime == b.joinTime:
		return fmt.Sprintf("%s (%s)", MarkerUnchanged, annotation)
	case a.town.Equal(b.town):
		return fmt.Sprintf("%s User rejoined town `%s` at %s. (%s)",
			MarkerRejoined, b.town, Timestamp(MillisToSeconds(b.joinTime)), annotation)
	default:
		return fmt.Sprintf("%s User joined town `%s` at %s. (%s)",
			MarkerJoinedTown, b.town, Timestamp(MillisToSeconds(b.joinTime)), annotation)
	}
}
