package domain

const (
	// LiveIdentifier marks a snapshot fetched at run time instead of read from a file
	LiveIdentifier = "now"

	// DefaultSnapshotPrefix is the filename prefix of snapshot backups
	DefaultSnapshotPrefix = "nodes-towns"

	// LastSnapshotKey is the key-value store key holding the identifier of the newest evaluated snapshot
	LastSnapshotKey = "timeline:last_snapshot"
)
