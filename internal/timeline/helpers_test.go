package timeline_test

import (
	"fmt"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// Capture times of the fixture snapshots, one hour apart
const (
	t0 int64 = 1700000000
	t1 int64 = 1700003600
	t2 int64 = 1700007200
)

func snap(ts int64, residents map[string]domain.ResidentRecord, towns map[string]domain.TownRecord) domain.Snapshot {
	return domain.NewSnapshot(
		fmt.Sprintf("nodes-towns-%d.json", ts),
		ts,
		domain.SnapshotData{Residents: residents, Towns: towns},
	)
}

func live(residents map[string]domain.ResidentRecord, towns map[string]domain.TownRecord) domain.Snapshot {
	return domain.NewSnapshot(domain.LiveIdentifier, t2, domain.SnapshotData{Residents: residents, Towns: towns})
}

func millis(v int64) *int64 {
	return &v
}

func residents(records ...any) map[string]domain.ResidentRecord {
	m := make(map[string]domain.ResidentRecord, len(records)/2)
	for i := 0; i+1 < len(records); i += 2 {
		m[records[i].(string)] = records[i+1].(domain.ResidentRecord)
	}
	return m
}
