package domain

import "errors"

// Error taxonomy shared by both services. Wrap with fmt.Errorf("%w: ...")
// to attach detail; callers classify with errors.Is.
var (
	// ErrConfigMissing: required environment configuration is absent.
	// Not retryable until the process is redeployed with the config set.
	ErrConfigMissing = errors.New("required configuration missing")

	// ErrRetrievalFailed: the secret store call failed. Transient; the
	// next call retries the outbound fetch.
	ErrRetrievalFailed = errors.New("secret retrieval failed")

	// ErrConnectionUnavailable: the database could not be reached, either
	// because connection config is incomplete or the dial/ping failed.
	ErrConnectionUnavailable = errors.New("database connection unavailable")

	// ErrQueryFailed: a statement failed after a connection was obtained.
	ErrQueryFailed = errors.New("query failed")

	// ErrValidation: caller input is invalid. Never retried.
	ErrValidation = errors.New("invalid input")

	// ErrNoData: the relation holds no rows. A legitimate empty state for
	// the analytics summary, not a system fault.
	ErrNoData = errors.New("no property data available")
)
