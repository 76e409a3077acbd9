package db

import (
	"context"
	"fmt"

	"project-dashboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AssignmentRepo struct {
	coll *mongo.Collection
}

func NewAssignmentRepo(database *mongo.Database) *AssignmentRepo {
	return &AssignmentRepo{coll: database.Collection(AssignmentsCollection)}
}

// joinPipeline matches assignments, orders them newest start_date first and
// replaces both references with the display fields of the referenced documents.
func joinPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "start_date", Value: -1}, {Key: "_id", Value: -1}}}},
		lookupStage(EmployeesCollection, "employee_id"),
		unwindStage("employee_id"),
		lookupStage(ProjectsCollection, "project_id"),
		unwindStage("project_id"),
		{{Key: "$project", Value: bson.D{
			{Key: "employee_id._id", Value: 1},
			{Key: "employee_id.employee_id", Value: 1},
			{Key: "employee_id.full_name", Value: 1},
			{Key: "employee_id.email", Value: 1},
			{Key: "project_id._id", Value: 1},
			{Key: "project_id.project_id", Value: 1},
			{Key: "project_id.project_name", Value: 1},
			{Key: "start_date", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "updatedAt", Value: 1},
		}}},
	}
}

func lookupStage(from, field string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: field},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: field},
	}}}
}

// A dangling reference yields an empty lookup array; preserving it drops the
// field so it decodes as nil.
func unwindStage(field string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$" + field},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}

func filterMatch(f models.AssignmentFilter) bson.D {
	match := bson.D{}
	if f.EmployeeID != nil {
		match = append(match, bson.E{Key: "employee_id", Value: *f.EmployeeID})
	}
	if f.ProjectID != nil {
		match = append(match, bson.E{Key: "project_id", Value: *f.ProjectID})
	}
	return match
}

func (r *AssignmentRepo) ListJoined(ctx context.Context, f models.AssignmentFilter) ([]models.AssignmentView, error) {
	cursor, err := r.coll.Aggregate(ctx, joinPipeline(filterMatch(f)))
	if err != nil {
		return nil, fmt.Errorf("aggregate assignments: %w", err)
	}
	views := []models.AssignmentView{}
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	return views, nil
}

func (r *AssignmentRepo) FindJoined(ctx context.Context, id primitive.ObjectID) (*models.AssignmentView, error) {
	cursor, err := r.coll.Aggregate(ctx, joinPipeline(bson.D{{Key: "_id", Value: id}}))
	if err != nil {
		return nil, fmt.Errorf("aggregate assignment: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("read assignment: %w", err)
		}
		return nil, ErrNotFound
	}
	var view models.AssignmentView
	if err := cursor.Decode(&view); err != nil {
		return nil, fmt.Errorf("decode assignment: %w", err)
	}
	return &view, nil
}

func (r *AssignmentRepo) Insert(ctx context.Context, a *models.Assignment) error {
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return translateWriteErr("insert assignment", err)
	}
	return nil
}

func (r *AssignmentRepo) Update(ctx context.Context, id primitive.ObjectID, u models.AssignmentUpdate) error {
	set := bson.M{"updatedAt": u.UpdatedAt}
	if u.EmployeeID != nil {
		set["employee_id"] = *u.EmployeeID
	}
	if u.ProjectID != nil {
		set["project_id"] = *u.ProjectID
	}
	if u.SetStartDate {
		set["start_date"] = u.StartDate
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return translateWriteErr("update assignment", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AssignmentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
