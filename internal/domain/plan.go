package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan represents a membership plan members can purchase.
type Plan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Price          float64            `bson:"price" json:"price"` // Must be >= 0
	DurationMonths int                `bson:"durationMonths" json:"durationMonths"`
	Features       []string           `bson:"features,omitempty" json:"features,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
