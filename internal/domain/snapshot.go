package domain

import (
	"sort"
)

// Snapshot is one point-in-time capture of every resident and town.
// Snapshots are treated as immutable once loaded.
type Snapshot struct {
	// Identifier is the source identifier, a backup filename or LiveIdentifier
	Identifier string
	// Timestamp is the capture time in epoch seconds
	Timestamp int64
	Residents map[string]ResidentRecord
	Towns     map[string]TownRecord
}

// SnapshotData is the persisted shape of a snapshot file
type SnapshotData struct {
	Residents map[string]ResidentRecord `json:"residents"`
	Towns     map[string]TownRecord     `json:"towns"`
}

// ResidentRecord is the state of one resident inside a snapshot
type ResidentRecord struct {
	Name string `json:"name"`
	// LastOnline is the epoch milliseconds of the last online event, nil when never recorded
	LastOnline *int64 `json:"lastOnline"`
	Town       TownRef `json:"town"`
	// TownJoinTime is the epoch milliseconds of the last town join, 0 when unset
	TownJoinTime int64 `json:"townJoinTime"`
}

// TownRecord is the state of one town inside a snapshot
type TownRecord struct {
	// Officers holds resident ids; the order carries no meaning
	Officers []string `json:"officers"`
}

// IsLive reports whether the snapshot was fetched at run time
func (s Snapshot) IsLive() bool {
	return s.Identifier == LiveIdentifier
}

// Resident looks up a resident, reporting whether it exists in this snapshot
func (s Snapshot) Resident(id string) (ResidentRecord, bool) {
	r, ok := s.Residents[id]
	return r, ok
}

// Town looks up a town, reporting whether it is founded in this snapshot
func (s Snapshot) Town(name string) (TownRecord, bool) {
	t, ok := s.Towns[name]
	return t, ok
}

// ResidentIDs returns the resident ids of the snapshot in sorted order
func (s Snapshot) ResidentIDs() []string {
	return sortedKeys(s.Residents)
}

// TownNames returns the town names of the snapshot in sorted order
func (s Snapshot) TownNames() []string {
	return sortedKeys(s.Towns)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewSnapshot builds a snapshot from decoded file data
func NewSnapshot(identifier string, timestamp int64, data SnapshotData) Snapshot {
	residents := data.Residents
	if residents == nil {
		residents = map[string]ResidentRecord{}
	}
	towns := data.Towns
	if towns == nil {
		towns = map[string]TownRecord{}
	}

	return Snapshot{
		Identifier: identifier,
		Timestamp:  timestamp,
		Residents:  residents,
		Towns:      towns,
	}
}
