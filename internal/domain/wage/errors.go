package wage

import "errors"

var (
	ErrCalculationNotFound    = errors.New("wage calculation not found")
	ErrCalculationAlreadyPaid = errors.New("wage calculation already paid")
	ErrEmployeeRequired       = errors.New("employee is required to compute a breakdown")
)
