package services

import "errors"

// Error kinds. Every error a service returns on purpose wraps exactly one of
// these; the HTTP layer picks the status code from the kind.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream failure")
)

// Error is a service failure with a client-facing message.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

var (
	ErrEmailTaken         = &Error{Kind: ErrConflict, Msg: "email already registered"}
	ErrAlreadyVerified    = &Error{Kind: ErrConflict, Msg: "email already verified"}
	ErrInvalidCredentials = &Error{Kind: ErrUnauthorized, Msg: "invalid email or password"}
	ErrInvalidToken       = &Error{Kind: ErrUnauthorized, Msg: "invalid or expired token"}
	ErrUserNotFound       = &Error{Kind: ErrNotFound, Msg: "user not found"}
	ErrRecipeNotFound     = &Error{Kind: ErrNotFound, Msg: "recipe not found"}
	ErrNotOwned           = &Error{Kind: ErrNotFound, Msg: "recipe not found or not owned by you"}
	ErrNotSaved           = &Error{Kind: ErrNotFound, Msg: "recipe is not in your saved list"}
	ErrPosterNotFound     = &Error{Kind: ErrNotFound, Msg: "poster not found"}
	ErrArticleNotFound    = &Error{Kind: ErrNotFound, Msg: "article not found"}
	ErrPosterTaken        = &Error{Kind: ErrConflict, Msg: "poster already has a recipe"}
	ErrLoginRequired      = &Error{Kind: ErrUnauthorized, Msg: "login required"}
	ErrAccountGone        = &Error{Kind: ErrUnauthorized, Msg: "account no longer exists"}
)

func validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func upstream(msg string, cause error) error {
	return &Error{Kind: ErrUpstream, Msg: msg, Cause: cause}
}
