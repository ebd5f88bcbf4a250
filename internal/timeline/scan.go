package timeline

import "github.com/feral-file/ff-timeline/internal/domain"

// ScanFirst applies f to the first snapshot and its successor.
// next is nil when the sequence holds a single snapshot; ok is false when it is empty.
func ScanFirst[T any](snapshots []domain.Snapshot, f func(first domain.Snapshot, next *domain.Snapshot) T) (result T, ok bool) {
	if len(snapshots) == 0 {
		return result, false
	}

	var next *domain.Snapshot
	if len(snapshots) > 1 {
		next = &snapshots[1]
	}

	return f(snapshots[0], next), true
}

// ScanPairs applies f to every adjacent pair and returns the results in snapshot order.
// The result has len(snapshots)-1 entries, or none for fewer than two snapshots.
func ScanPairs[T any](snapshots []domain.Snapshot, f func(a, b domain.Snapshot) T) []T {
	if len(snapshots) < 2 {
		return []T{}
	}

	results := make([]T, 0, len(snapshots)-1)
	for i := 0; i < len(snapshots)-1; i++ {
		results = append(results, f(snapshots[i], snapshots[i+1]))
	}

	return results
}
