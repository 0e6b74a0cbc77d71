package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EquipmentStatus type for the equipment maintenance lifecycle
type EquipmentStatus string

const (
	EquipmentOperational EquipmentStatus = "Operational"
	EquipmentMaintenance EquipmentStatus = "Maintenance"
	EquipmentBroken      EquipmentStatus = "Broken"
)

// ValidEquipmentStatus reports whether s is one of the known statuses.
func ValidEquipmentStatus(s EquipmentStatus) bool {
	switch s {
	case EquipmentOperational, EquipmentMaintenance, EquipmentBroken:
		return true
	}
	return false
}

// Equipment represents a piece of gym equipment tracked by admins.
type Equipment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Status             EquipmentStatus    `bson:"status" json:"status"` // Defaults to Operational on creation
	LastMaintained     time.Time          `bson:"lastMaintained" json:"lastMaintained"`
	NextMaintenanceDue *time.Time         `bson:"nextMaintenanceDue,omitempty" json:"nextMaintenanceDue,omitempty"`
	PhotoKey           string             `bson:"photoKey,omitempty" json:"-"` // Object key in the S3 bucket - internal use
}
