package domain

// EntityType identifies which kind of entity a timeline belongs to
type EntityType string

const (
	EntityTypeResident EntityType = "resident"
	EntityTypeTown     EntityType = "town"
)

// Bundle is the keyed result of analyzing one entity
type Bundle interface {
	EntityType() EntityType
}

// ResidentTimeline holds the narratives of one resident
type ResidentTimeline struct {
	LastOnline []string `json:"lastonline"`
	LastTown   []string `json:"lasttown"`
}

// EntityType implements Bundle
func (ResidentTimeline) EntityType() EntityType {
	return EntityTypeResident
}

// TownTimeline holds the narratives of one town
type TownTimeline struct {
	CompareOfficers []string `json:"compareofficers"`
}

// EntityType implements Bundle
func (TownTimeline) EntityType() EntityType {
	return EntityTypeTown
}

// TimelineMessage is the payload published for every analyzed entity
type TimelineMessage struct {
	RunID      string     `json:"run_id"`
	EntityType EntityType `json:"entity_type"`
	Key        string     `json:"key"`
	Bundle     Bundle     `json:"bundle"`
}
