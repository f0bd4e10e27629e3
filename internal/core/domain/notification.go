package domain

import "time"

// TargetKind tags the entity type a notification points at.
type TargetKind string

const (
	TargetTask    TargetKind = "task"
	TargetComment TargetKind = "comment"
	TargetIdea    TargetKind = "idea"
	TargetEvent   TargetKind = "event"
)

// Notification verbs. Human-readable; rendered as "<actor> <verb>".
const (
	VerbTaskAssigned = "assigned you a new task"
	VerbMentioned    = "mentioned you in a comment"
)

// TargetRef is a tagged reference to the entity a notification is about.
// It is resolved to a navigable link at presentation time only.
type TargetRef struct {
	Kind TargetKind `json:"kind" bson:"kind"`
	ID   string     `json:"id" bson:"id"`
}

// Notification records that an actor did something the recipient should know
// about. Created only by the notifier; the only permitted mutation afterwards
// is flipping IsRead from false to true.
type Notification struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	RecipientID string    `json:"recipient_id" bson:"recipient_id"`
	ActorID     string    `json:"actor_id" bson:"actor_id"`
	Verb        string    `json:"verb" bson:"verb"`
	Target      TargetRef `json:"target" bson:"target"`
	IsRead      bool      `json:"is_read" bson:"is_read"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
