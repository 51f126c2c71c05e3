package services

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when registering an address that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidTransition is returned for an illegal application status
	// change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicateApplication is returned when a user already has an
	// application for the job.
	ErrDuplicateApplication = errors.New("application already exists for this job")

	// ErrUnsupportedFileType is returned for resume uploads outside
	// pdf/docx/txt.
	ErrUnsupportedFileType = errors.New("unsupported resume file type")

	// ErrNoProfile is returned when an operation needs a profile the user
	// has not created yet.
	ErrNoProfile = errors.New("user has no profile")

	// ErrFileTooLarge is returned for resume uploads over the size limit.
	ErrFileTooLarge = errors.New("file exceeds size limit")
)
