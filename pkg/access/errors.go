package access

import (
	"errors"
	"fmt"
)

// InvalidInputError signals a malformed request: bad identifiers, missing
// required fields, or a batch spanning multiple spaces. It never means
// "access denied".
type InvalidInputError struct {
	Msg string
}

// NewInvalidInputError returns an InvalidInputError with the given message
func NewInvalidInputError(msg string) *InvalidInputError {
	return &InvalidInputError{Msg: msg}
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Msg
}

// IsInvalidInput reports whether err is an InvalidInputError
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// DataNotFoundError signals that a referenced entity does not exist
type DataNotFoundError struct {
	Entity string
	ID     string
}

// NewDataNotFoundError returns a DataNotFoundError for the given entity
func NewDataNotFoundError(entity, id string) *DataNotFoundError {
	return &DataNotFoundError{Entity: entity, ID: id}
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// IsDataNotFound reports whether err is a DataNotFoundError, including the
// PostCategoryNotFoundError specialization.
func IsDataNotFound(err error) bool {
	var target *DataNotFoundError
	return errors.As(err, &target)
}

// PostCategoryNotFoundError is the DataNotFoundError specialization for post
// categories.
type PostCategoryNotFoundError struct {
	ID string
}

// NewPostCategoryNotFoundError returns a PostCategoryNotFoundError
func NewPostCategoryNotFoundError(id string) *PostCategoryNotFoundError {
	return &PostCategoryNotFoundError{ID: id}
}

func (e *PostCategoryNotFoundError) Error() string {
	return "post category not found: " + e.ID
}

// Unwrap lets errors.As treat this as a DataNotFoundError too
func (e *PostCategoryNotFoundError) Unwrap() error {
	return &DataNotFoundError{Entity: "post category", ID: e.ID}
}

// IsPostCategoryNotFound reports whether err is a PostCategoryNotFoundError
func IsPostCategoryNotFound(err error) bool {
	var target *PostCategoryNotFoundError
	return errors.As(err, &target)
}

// UndesirableOperationError signals an operation the system refuses on
// principle: assigning or deleting a computed-only level, or assigning the
// unsupported custom level.
type UndesirableOperationError struct {
	Msg string
}

// NewUndesirableOperationError returns an UndesirableOperationError
func NewUndesirableOperationError(msg string) *UndesirableOperationError {
	return &UndesirableOperationError{Msg: msg}
}

func (e *UndesirableOperationError) Error() string {
	return "undesirable operation: " + e.Msg
}

// IsUndesirableOperation reports whether err is an UndesirableOperationError
func IsUndesirableOperation(err error) bool {
	var target *UndesirableOperationError
	return errors.As(err, &target)
}

// InsecureOperationError signals a grant that would leak privilege: a
// cross-space role/space assignment or a public grant above view.
type InsecureOperationError struct {
	Msg string
}

// NewInsecureOperationError returns an InsecureOperationError
func NewInsecureOperationError(msg string) *InsecureOperationError {
	return &InsecureOperationError{Msg: msg}
}

func (e *InsecureOperationError) Error() string {
	return "insecure operation: " + e.Msg
}

// IsInsecureOperation reports whether err is an InsecureOperationError
func IsInsecureOperation(err error) bool {
	var target *InsecureOperationError
	return errors.As(err, &target)
}

// AssignmentNotPermittedError signals an assignee group outside the allowed
// set for the resource kind.
type AssignmentNotPermittedError struct {
	Group AssigneeGroup
}

// NewAssignmentNotPermittedError returns an AssignmentNotPermittedError
func NewAssignmentNotPermittedError(group AssigneeGroup) *AssignmentNotPermittedError {
	return &AssignmentNotPermittedError{Group: group}
}

func (e *AssignmentNotPermittedError) Error() string {
	return fmt.Sprintf("assignment not permitted for assignee group %q", e.Group)
}

// IsAssignmentNotPermitted reports whether err is an AssignmentNotPermittedError
func IsAssignmentNotPermitted(err error) bool {
	var target *AssignmentNotPermittedError
	return errors.As(err, &target)
}
