// Common service-level error values. Handlers translate these into HTTP
// status codes and the structured error envelope; services only wrap and
// return them.
package service

import "errors"

var (
	// ErrValidation is returned for missing or malformed request fields.
	ErrValidation = errors.New("invalid request")

	// ErrInvalidEmail is returned when an email address fails the
	// local@domain.tld shape check.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrAlreadyPurchased gates duplicate purchases of the same game by the
	// same email. Best effort: the check and the later store are not one
	// transaction.
	ErrAlreadyPurchased = errors.New("game already purchased")

	// ErrFileNotFound is returned when a download names a file the game
	// does not declare.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoPurchases is returned by recovery when an email has no records.
	ErrNoPurchases = errors.New("no purchases found")

	// ErrAllExpired is returned by recovery when every record for an email
	// is past its download expiry.
	ErrAllExpired = errors.New("all download links expired")

	// ErrNotifyFailed is returned when a notice could not be delivered on a
	// path where the caller asked for it (recovery). Fulfillment never
	// returns it.
	ErrNotifyFailed = errors.New("notification delivery failed")
)
