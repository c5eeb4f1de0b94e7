package file

import (
	"errors"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

var (
	// Loading and parsing
	ErrLoad          = errors.New("failed to load flag document")
	ErrParse         = errors.New("failed to parse flag document")
	ErrInvalidRecord = feature.ErrInvalidRecord
	ErrNilLoader     = errors.New("flag document loader is nil")

	// Local files
	ErrFileNotFound = errors.New("file not found")
	ErrIsDirectory  = errors.New("path is a directory")

	// S3-specific errors for proper error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")

	// Configuration errors
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
