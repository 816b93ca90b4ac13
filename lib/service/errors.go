package service

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Sentinel errors returned by the service layer. Controllers map them onto
// the stable response shapes in lib/responses.
var (
	ErrBadAuth              = errors.New("bad auth")
	ErrNotVerified          = errors.New("account is not verified")
	ErrUserNotFound         = errors.New("user not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrEventNameTaken       = errors.New("event name already taken")
	ErrAccountTaken         = errors.New("username or email already taken")
	ErrNotAcceptingMessages = errors.New("user is not accepting messages")
	ErrRateLimited          = errors.New("rate limited")
	ErrIncorrectCode        = errors.New("incorrect verification code")
	ErrExpiredCode          = errors.New("verification code expired")
	ErrWeakPassword         = errors.New("password entropy is too low")
)

// isUniqueViolation reports whether err is a unique index violation. The
// indexes are the arbiter for duplicate names and accounts, so concurrent
// creates cannot both win.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
