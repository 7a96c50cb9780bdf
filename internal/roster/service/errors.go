package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountPending     = errors.New("account is awaiting approval")
	ErrAccountRejected    = errors.New("account has been rejected")
	ErrAccountNotFound    = errors.New("account not found")
	ErrWeakPassword       = errors.New("password does not meet minimum requirements")

	ErrDuplicateEmail          = errors.New("email is already registered")
	ErrPendingInvitationExists = errors.New("a pending invitation already exists for this email")
	ErrInvitationNotFound      = errors.New("invitation not found")
	ErrInvitationExpired       = errors.New("invitation has expired")
	ErrInvitationAlreadyUsed   = errors.New("invitation has already been used")

	ErrInvalidEmail        = errors.New("a valid email address is required")
	ErrNoPlayerMatch       = errors.New("no matching player found on any roster")
	ErrAlreadyLinked       = errors.New("player is already linked to an account")
	ErrInvalidRole         = errors.New("invalid role")
	ErrTeamNotFound        = errors.New("team not found")
	ErrPolicyDenied        = errors.New("not allowed")
	ErrInvalidStatusChange = errors.New("invalid account status change")
)
