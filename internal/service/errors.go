package service

import "errors"

var (
	ErrNotFound      = errors.New("error not found")
	ErrInvalidInput  = errors.New("error invalid input")
	ErrUnauthorized  = errors.New("error unauthorized")
	ErrEmailTaken    = errors.New("error email already registered")
	ErrNotConfigured = errors.New("error feature not configured")
)
