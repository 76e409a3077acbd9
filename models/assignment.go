package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment is the stored link between one employee and one project.
// A nil StartDate means the supplied date could not be parsed.
type Assignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EmployeeID primitive.ObjectID `bson:"employee_id" json:"employee_id"`
	ProjectID  primitive.ObjectID `bson:"project_id" json:"project_id"`
	StartDate  *time.Time         `bson:"start_date" json:"start_date"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EmployeeRef is the slice of an employee inlined into an assignment.
type EmployeeRef struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	EmployeeID string             `bson:"employee_id" json:"employee_id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	Email      string             `bson:"email" json:"email"`
}

// ProjectRef is the slice of a project inlined into an assignment.
type ProjectRef struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	ProjectID   string             `bson:"project_id" json:"project_id"`
	ProjectName string             `bson:"project_name" json:"project_name"`
}

// AssignmentView is an assignment with its references expanded. Employee
// or Project is nil when the referenced document no longer exists.
type AssignmentView struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Employee  *EmployeeRef       `bson:"employee_id" json:"employee_id"`
	Project   *ProjectRef        `bson:"project_id" json:"project_id"`
	StartDate *time.Time         `bson:"start_date" json:"start_date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AssignmentFilter narrows an assignment listing. Nil fields do not filter.
type AssignmentFilter struct {
	EmployeeID *primitive.ObjectID
	ProjectID  *primitive.ObjectID
}

// AssignmentUpdate carries the fields of an assignment update. StartDate is
// applied only when SetStartDate is true, so it can be written as null.
type AssignmentUpdate struct {
	EmployeeID   *primitive.ObjectID
	ProjectID    *primitive.ObjectID
	SetStartDate bool
	StartDate    *time.Time
	UpdatedAt    time.Time
}
