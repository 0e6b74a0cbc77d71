package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultDietName is used when a trainer assigns a diet without naming it.
const DefaultDietName = "Weekly Plan"

// Meal is a single entry in a diet plan.
type Meal struct {
	Time        string  `bson:"time,omitempty" json:"time,omitempty"` // e.g. "Breakfast", "10:00 AM"
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Calories    float64 `bson:"calories,omitempty" json:"calories,omitempty"`
	Protein     float64 `bson:"protein,omitempty" json:"protein,omitempty"` // grams
	Carbs       float64 `bson:"carbs,omitempty" json:"carbs,omitempty"`     // grams
	Fats        float64 `bson:"fats,omitempty" json:"fats,omitempty"`       // grams
}

// Diet is a meal plan assigned to a member by a trainer (or admin).
// Diets are append-only.
type Diet struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user" json:"user"`
	AssignedBy primitive.ObjectID `bson:"assignedBy" json:"assignedBy"` // Trainer or admin
	Name       string             `bson:"name" json:"name"`
	Meals      []Meal             `bson:"meals" json:"meals"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
