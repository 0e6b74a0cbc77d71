package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceStatus type for check-in records
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceDayFormat is the layout for the derived calendar-day field.
const AttendanceDayFormat = "2006-01-02"

// Attendance is a member's check-in record. Records are append-only; the
// (user, day) pair is unique so a member can check in at most once per
// calendar day, even under concurrent requests.
type Attendance struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user" json:"user"`
	Date        time.Time          `bson:"date" json:"date"`
	Day         string             `bson:"day" json:"-"` // Derived from Date, local calendar day
	CheckInTime time.Time          `bson:"checkInTime" json:"checkInTime"`
	Status      AttendanceStatus   `bson:"status" json:"status"` // Defaults to present
}
