package timeline

import (
	"github.com/feral-file/ff-timeline/internal/domain"
)

// ResidentTimeline runs every resident analyzer for one resident id
func ResidentTimeline(snapshots []domain.Snapshot, id string) domain.ResidentTimeline {
	return domain.ResidentTimeline{
		LastOnline: OnlineStatus(snapshots, id),
		LastTown:   TownMembership(snapshots, id),
	}
}

// TownTimeline runs every town analyzer for one town name
func TownTimeline(snapshots []domain.Snapshot, name string) (domain.TownTimeline, error) {
	lines, err := OfficerRoster(snapshots, name)
	if err != nil {
		return domain.TownTimeline{}, err
	}

	return domain.TownTimeline{CompareOfficers: lines}, nil
}

// Universe is the set of entities evaluated in a run
type Universe struct {
	ResidentIDs []string
	TownNames   []string
}

// EntityUniverse enumerates the residents and towns of the last snapshot
func EntityUniverse(snapshots []domain.Snapshot) Universe {
	if len(snapshots) == 0 {
		return Universe{}
	}

	last := snapshots[len(snapshots)-1]
	return Universe{
		ResidentIDs: last.ResidentIDs(),
		TownNames:   last.TownNames(),
	}
}
