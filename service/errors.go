package service

import (
	"errors"
	"fmt"

	"project-dashboard/db"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidID reports an id that is not a 24-character hex string.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound reports a well-formed id with no matching record.
	ErrNotFound = errors.New("not found")
	// ErrRefNotFound reports a reference that resolves to no employee or project.
	ErrRefNotFound = errors.New("reference not found")
)

// ValidationError is returned for bad input shape or an unresolved reference.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PersistenceError wraps a store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// storeErr maps a store error onto the service taxonomy.
func storeErr(op string, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return &PersistenceError{Op: op, Err: err}
}

func parseID(id string) (primitive.ObjectID, error) {
	if !nativeIDPattern.MatchString(id) {
		return primitive.NilObjectID, ErrInvalidID
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
