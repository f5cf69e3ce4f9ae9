package common

import "errors"

var (
	// repository specific errors
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("application already exists")

	// service specific errors
	ErrValidation    = errors.New("validation error")
	ErrNotAuthorized = errors.New("not authorized")
	ErrInternal      = errors.New("internal error")

	// pin store errors
	ErrUploadFailure    = errors.New("upload failure")
	ErrRetrievalFailure = errors.New("retrieval failure")

	// cryptographic errors
	ErrIntegrityFailure      = errors.New("integrity failure")
	ErrDecryptionFailure     = errors.New("decryption failure")
	ErrNoRecipientsAvailable = errors.New("no recipients available")

	ErrInvalidToken = errors.New("invalid token")
)
