package services

import "errors"

var (
	ErrUnknown             = errors.New("[service]: unknown error")
	ErrRecordNotFound      = errors.New("[service]: record not found")
	ErrExpired             = errors.New("[service]: record expired")
	ErrConflict            = errors.New("[service]: alias already in use")
	ErrValidation          = errors.New("[service]: validation error")
	ErrAllocationExhausted = errors.New("[service]: short url allocation attempts exhausted")
)
