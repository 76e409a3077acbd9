package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EmployeeID string             `bson:"employee_id" json:"employee_id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	Email      string             `bson:"email" json:"email"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EmployeeUpdate carries the fields of a partial employee update.
// Nil fields are left untouched.
type EmployeeUpdate struct {
	EmployeeID *string
	FullName   *string
	Email      *string
	UpdatedAt  time.Time
}
