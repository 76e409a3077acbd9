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

type EmployeeRepo struct {
	coll *mongo.Collection
}

func NewEmployeeRepo(database *mongo.Database) *EmployeeRepo {
	return &EmployeeRepo{coll: database.Collection(EmployeesCollection)}
}

func (r *EmployeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "employee_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	employees := []models.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &employee, nil
}

// FindIDByCode returns the store id of the employee whose employee_id is
// exactly code.
func (r *EmployeeRepo) FindIDByCode(ctx context.Context, code string) (primitive.ObjectID, error) {
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.coll.FindOne(ctx, bson.M{"employee_id": code}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, ErrNotFound
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("find employee by code: %w", err)
	}
	return doc.ID, nil
}

func (r *EmployeeRepo) Insert(ctx context.Context, employee *models.Employee) error {
	if _, err := r.coll.InsertOne(ctx, employee); err != nil {
		return translateWriteErr("insert employee", err)
	}
	return nil
}

func (r *EmployeeRepo) Update(ctx context.Context, id primitive.ObjectID, u models.EmployeeUpdate) (*models.Employee, error) {
	set := bson.M{"updatedAt": u.UpdatedAt}
	if u.EmployeeID != nil {
		set["employee_id"] = *u.EmployeeID
	}
	if u.FullName != nil {
		set["full_name"] = *u.FullName
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}

	var employee models.Employee
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateWriteErr("update employee", err)
	}
	return &employee, nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
