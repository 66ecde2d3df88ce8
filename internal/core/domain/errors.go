package domain

import "errors"

var (
	// ErrInvalidSearchURL means the search URL could not be parsed at all.
	ErrInvalidSearchURL = errors.New("invalid search URL")

	// ErrDomainNotAllowed means the URL points outside the OLX domains the
	// service is willing to talk to.
	ErrDomainNotAllowed = errors.New("domain is not allowed")

	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)
