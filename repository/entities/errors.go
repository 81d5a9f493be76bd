package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detailed information.
var (
	// ErrConfiguration is matched by every error that aborts a configuration pass.
	ErrConfiguration = errors.New("repository configuration failed")

	// ErrCredentialAcquisition is returned when no access token could be obtained.
	ErrCredentialAcquisition = errors.New("credential acquisition failed")

	// ErrURLRewrite is returned when a matched repository URL cannot be rebuilt.
	ErrURLRewrite = errors.New("repository url rewrite failed")
)

// CredentialAcquisitionError indicates the credential provider could not produce
// or refresh an access token.
type CredentialAcquisitionError struct {
	Err error
}

func (e *CredentialAcquisitionError) Error() string {
	return fmt.Sprintf("failed to get access token from gcloud or Application Default Credentials: %v", e.Err)
}

// Unwrap returns the provider error.
func (e *CredentialAcquisitionError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, entities.ErrCredentialAcquisition)
func (e *CredentialAcquisitionError) Is(target error) bool {
	return target == ErrCredentialAcquisition || target == ErrConfiguration
}

// URLRewriteError indicates a matched repository URL could not be reconstructed.
// URL holds the offending URL for diagnosis.
type URLRewriteError struct {
	Err error
	URL string
}

func (e *URLRewriteError) Error() string {
	return fmt.Sprintf("invalid repository URL %s: %v", e.URL, e.Err)
}

// Unwrap returns the reconstruction error.
func (e *URLRewriteError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, entities.ErrURLRewrite)
func (e *URLRewriteError) Is(target error) bool {
	return target == ErrURLRewrite || target == ErrConfiguration
}
