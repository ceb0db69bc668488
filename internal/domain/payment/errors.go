package payment

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPaymentExists   = errors.New("payment already recorded for this wage calculation")
)
