package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// EntityTimeline represents the entity_timelines table - the latest narrative bundle per resident or town
type EntityTimeline struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EntityType is either resident or town
	EntityType domain.EntityType `gorm:"column:entity_type;not null;type:text;uniqueIndex:idx_entity_timelines_entity"`
	// Key is the resident id or the town name
	Key string `gorm:"column:key;not null;type:text;uniqueIndex:idx_entity_timelines_entity"`
	// Bundle is the serialized narrative bundle, e.g. {"lastonline": [...], "lasttown": [...]}
	Bundle datatypes.JSON `gorm:"column:bundle;not null;type:jsonb"`
	// Checksum is the hex sha256 of the canonical JSON of Bundle
	Checksum string `gorm:"column:checksum;not null;type:char(64)"`
	// RunID is the ULID of the run that last changed the bundle
	RunID string `gorm:"column:run_id;not null;type:varchar(26)"`
	// CreatedAt is the timestamp when the entity was first evaluated
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the bundle last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the EntityTimeline model
func (EntityTimeline) TableName() string {
	return "entity_timelines"
}
