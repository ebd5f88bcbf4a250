package timeline

import (
	"fmt"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// roster is the set of officer display names of a town in one snapshot.
// names keeps first-seen roster order so narratives stay deterministic.
type roster struct {
	names []string
	set   map[string]struct{}
}

// resolveRoster returns nil when the town is not founded in the snapshot
func resolveRoster(s domain.Snapshot, town string) (*roster, error) {
	t, ok := s.Town(town)
	if !ok {
		return nil, nil
	}

	r := &roster{set: make(map[string]struct{}, len(t.Officers))}
	for _, id := range t.Officers {
		resident, ok := s.Resident(id)
		if !ok {
			return nil, fmt.Errorf("%w: town %q officer %q in %s", domain.ErrUnknownOfficer, town, id, s.Identifier)
		}
		if _, seen := r.set[resident.Name]; seen {
			continue
		}
		r.set[resident.Name] = struct{}{}
		r.names = append(r.names, resident.Name)
	}

	return r, nil
}

func (r *roster) equal(other *roster) bool {
	if r == nil || other == nil {
		return r == nil && other == nil
	}
	if len(r.set) != len(other.set) {
		return false
	}
	for name := range r.set {
		if _, ok := other.set[name]; !ok {
			return false
		}
	}
	return true
}

// without returns the names of r missing from other, in r's order
func (r *roster) without(other *roster) []string {
	var out []string
	for _, name := range r.names {
		if _, ok := other.set[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

type rosterChange struct {
	lines []string
	err   error
}

// OfficerRoster narrates the town's initial officers followed by every roster change, in snapshot order.
// It fails with domain.ErrUnknownOfficer when a roster names a resident missing from its snapshot.
func OfficerRoster(snapshots []domain.Snapshot, town string) ([]string, error) {
	initial, ok := ScanFirst(snapshots, func(first domain.Snapshot, _ *domain.Snapshot) rosterChange {
		lines, err := describeInitialRoster(first, town)
		return rosterChange{lines: lines, err: err}
	})
	if !ok {
		return []string{}, nil
	}
	if initial.err != nil {
		return nil, initial.err
	}

	changes := ScanPairs(snapshots, func(a, b domain.Snapshot) rosterChange {
		lines, err := compareRosters(a, b, town)
		return rosterChange{lines: lines, err: err}
	})

	lines := initial.lines
	for _, change := range changes {
		if change.err != nil {
			return nil, change.err
		}
		lines = append(lines, change.lines...)
	}

	return lines, nil
}

func describeInitialRoster(s domain.Snapshot, town string) ([]string, error) {
	annotation := DataFrom(s)

	r, err := resolveRoster(s, town)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return []string{fmt.Sprintf("%s Town has not yet been founded. (%s)", MarkerNotJoined, annotation)}, nil
	}

	lines := make([]string, 0, len(r.names))
	for _, name := range r.names {
		lines = append(lines, fmt.Sprintf("%s `%s` was an Officer. (%s)", MarkerOfficer, name, annotation))
	}
	return lines, nil
}

func compareRosters(a, b domain.Snapshot, town string) ([]string, error) {
	before, err := resolveRoster(a, town)
	if err != nil {
		return nil, err
	}
	after, err := resolveRoster(b, town)
	if err != nil {
		return nil, err
	}

	if before.equal(after) {
		return nil, nil
	}

	lines := []string{fmt.Sprintf("%s Changes (%s):", MarkerChanges, DataFrom(b))}

	switch {
	case before == nil:
		lines = append(lines, MarkerJoinedTown+" Town founded.")
		for _, name := range after.names {
			lines = append(lines, becameOfficer(name))
		}
	case after == nil:
		lines = append(lines, MarkerDestroyed+" Town destroyed.")
	default:
		left := before.without(after)
		joined := after.without(before)
		for _, name := range left {
			lines = append(lines, fmt.Sprintf("%s `%s` is no longer an Officer.", MarkerLeftOfficer, name))
		}
		for _, name := range joined {
			lines = append(lines, becameOfficer(name))
		}
	}

	return lines, nil
}

func becameOfficer(name string) string {
	return fmt.Sprintf("%s `%s` became an Officer.", MarkerNewOfficer, name)
}
