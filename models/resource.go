package models

import "time"

// Resource is a bookable entity listed on the marketplace: a space
// (meeting room, studio, venue) or a recurring event slot. All conflict
// checks run against the occurrences committed to a single resource.
type Resource struct {
	ID          string    `bson:"id" json:"id"`                   // Unique resource identifier (UUID)
	OwnerID     string    `bson:"owner_id" json:"owner_id"`       // Account that listed the resource
	Name        string    `bson:"name" json:"name"`
	Kind        string    `bson:"kind" json:"kind"`               // "space" or "event"
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Capacity    int       `bson:"capacity,omitempty" json:"capacity,omitempty"` // head count, informational
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	Version     int64     `bson:"version" json:"version"` // bumped on every committed booking; guards check-then-commit
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Resource kinds.
const (
	ResourceKindSpace = "space"
	ResourceKindEvent = "event"
)
