package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProjectID   string             `bson:"project_id" json:"project_id"`
	ProjectName string             `bson:"project_name" json:"project_name"`
	Description string             `bson:"project_description" json:"project_description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProjectUpdate carries the fields of a partial project update.
type ProjectUpdate struct {
	ProjectID   *string
	ProjectName *string
	Description *string
	UpdatedAt   time.Time
}
