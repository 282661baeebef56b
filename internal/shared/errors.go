package shared

import "errors"

var (

	// common errors
	ErrorNotFound = errors.New("not found")
	ErrorInternal = errors.New("internal error")

	// auth-specific errors
	ErrorInvalidToken            = errors.New("invalid token")
	ErrorInvalidAuthHeaderFormat = errors.New("invalid auth header format")
	ErrorInvalidLoginPassword    = errors.New("invalid username or password")
	ErrorForbidden               = errors.New("forbidden")

	// user-specific errors
	ErrorUsernameTaken = errors.New("Error: Username is already taken!")
	ErrorEmailInUse    = errors.New("Error: Email is already in use!")
	ErrorUserExists    = errors.New("username already exists")
)
