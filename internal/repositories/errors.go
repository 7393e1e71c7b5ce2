package repositories

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrWalletNotFound = errors.New("wallet not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
