package timeline

import (
	"fmt"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// Marker symbols tagging each narrative line
const (
	MarkerNotJoined   = "🚫"
	MarkerFirstJoin   = "🚪"
	MarkerOnline      = "🟢"
	MarkerOffline     = "🟡"
	MarkerNoTown      = "🗺️"
	MarkerJoinedTown  = "🏠"
	MarkerRejoined    = "🔄"
	MarkerUnchanged   = "⬇"
	MarkerOfficer     = "👮"
	MarkerChanges     = "📅"
	MarkerDestroyed   = "💥"
	MarkerNewOfficer  = "🟢"
	MarkerLeftOfficer = "🔴"
)

// Timestamp renders epoch seconds as a display placeholder
func Timestamp(epochSeconds int64) string {
	return fmt.Sprintf("<t:%d>", epochSeconds)
}

// MillisToSeconds floors epoch milliseconds to epoch seconds
func MillisToSeconds(ms int64) int64 {
	s := ms / 1000
	if ms%1000 != 0 && ms < 0 {
		s--
	}
	return s
}

// DataFrom renders the provenance annotation of a snapshot
func DataFrom(s domain.Snapshot) string {
	if s.IsLive() {
		return "data from now"
	}
	return "data from " + Timestamp(s.Timestamp)
}
