package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single entry within a logged workout. The shape is
// caller-supplied and stored verbatim.
type Exercise struct {
	Name   string  `bson:"name" json:"name"`
	Sets   int     `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps   int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight float64 `bson:"weight,omitempty" json:"weight,omitempty"` // kg
}

// Workout is a member's logged training session. Workouts are append-only;
// they are never updated or deleted through the API.
type Workout struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	Exercises       []Exercise         `bson:"exercises" json:"exercises"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Date            time.Time          `bson:"date" json:"date"` // Defaults to creation time
}
