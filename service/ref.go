package service

import (
	"context"
	"errors"
	"regexp"

	"project-dashboard/db"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind selects the collection a reference points into.
type Kind int

const (
	KindEmployee Kind = iota
	KindProject
)

func (k Kind) String() string {
	if k == KindProject {
		return "project"
	}
	return "employee"
}

// RefForm tells how a reference value was written.
type RefForm int

const (
	RefEmpty RefForm = iota
	RefNative
	RefCode
)

// Ref is a classified reference: either a native store id or a business code
// such as "E001".
type Ref struct {
	Form  RefForm
	Value string
}

var nativeIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Classify decides whether value is a native id or a business code.
func Classify(value string) Ref {
	switch {
	case value == "":
		return Ref{Form: RefEmpty}
	case nativeIDPattern.MatchString(value):
		return Ref{Form: RefNative, Value: value}
	default:
		return Ref{Form: RefCode, Value: value}
	}
}

// CodeLookup finds the store id for a business code.
type CodeLookup interface {
	FindIDByCode(ctx context.Context, code string) (primitive.ObjectID, error)
}

// Resolver turns employee and project references into store ids.
type Resolver struct {
	employees CodeLookup
	projects  CodeLookup
}

func NewResolver(employees, projects CodeLookup) *Resolver {
	return &Resolver{employees: employees, projects: projects}
}

// Resolve returns the store id value refers to. Native ids are returned as
// they are without checking that the document exists; business codes are
// matched exactly. ErrRefNotFound is returned for empty or unknown values.
func (r *Resolver) Resolve(ctx context.Context, kind Kind, value string) (primitive.ObjectID, error) {
	ref := Classify(value)
	switch ref.Form {
	case RefEmpty:
		return primitive.NilObjectID, ErrRefNotFound
	case RefNative:
		id, err := primitive.ObjectIDFromHex(ref.Value)
		if err != nil {
			return primitive.NilObjectID, ErrRefNotFound
		}
		return id, nil
	}

	lookup := r.employees
	if kind == KindProject {
		lookup = r.projects
	}
	id, err := lookup.FindIDByCode(ctx, ref.Value)
	if errors.Is(err, db.ErrNotFound) {
		return primitive.NilObjectID, ErrRefNotFound
	}
	if err != nil {
		return primitive.NilObjectID, &PersistenceError{Op: "resolve " + kind.String(), Err: err}
	}
	return id, nil
}
