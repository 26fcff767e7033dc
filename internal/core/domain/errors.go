package domain

import "errors"

// Validation errors (400).
var (
	ErrMissingCredentials = errors.New("login and password must be provided in body")
	ErrInvalidParams      = errors.New("parameters supplied are not valid")
	ErrTooManyParams      = errors.New("must supply exactly one parameter (user id)")
)

// Authorization and authentication errors (401).
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("wrong login and/or password")
)

// Not found errors (404).
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrContentNotFound = errors.New("content not found")
	ErrSlotNotFound    = errors.New("slot not found")
)

// ErrUserExists is returned when adding a user whose id is taken.
var ErrUserExists = errors.New("user already exists")

// Configuration errors (501).
var (
	ErrPluginNotInstalled = errors.New("JWT authentication plugin not installed")
	ErrTokenNotCreated    = errors.New("JWT authentication token not created, plugin probably not activated for `ICredentialsUpdatePlugin`")
)
