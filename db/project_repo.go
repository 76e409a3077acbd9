package db

import (
	"context"
	"errors"
	"fmt"

	"project-dashboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectRepo struct {
	coll *mongo.Collection
}

func NewProjectRepo(database *mongo.Database) *ProjectRepo {
	return &ProjectRepo{coll: database.Collection(ProjectsCollection)}
}

func (r *ProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "project_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &project, nil
}

// FindIDByCode returns the store id of the project whose project_id is
// exactly code.
func (r *ProjectRepo) FindIDByCode(ctx context.Context, code string) (primitive.ObjectID, error) {
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.coll.FindOne(ctx, bson.M{"project_id": code}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, ErrNotFound
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("find project by code: %w", err)
	}
	return doc.ID, nil
}

func (r *ProjectRepo) Insert(ctx context.Context, project *models.Project) error {
	if _, err := r.coll.InsertOne(ctx, project); err != nil {
		return translateWriteErr("insert project", err)
	}
	return nil
}

func (r *ProjectRepo) Update(ctx context.Context, id primitive.ObjectID, u models.ProjectUpdate) (*models.Project, error) {
	set := bson.M{"updatedAt": u.UpdatedAt}
	if u.ProjectID != nil {
		set["project_id"] = *u.ProjectID
	}
	if u.ProjectName != nil {
		set["project_name"] = *u.ProjectName
	}
	if u.Description != nil {
		set["project_description"] = *u.Description
	}

	var project models.Project
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateWriteErr("update project", err)
	}
	return &project, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
