package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrMissingJoiningDate = errors.New("employee master row has no parseable date of joining")
	ErrMissingGrossSalary = errors.New("employee master row has no parseable monthly gross salary")
)
