package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoSiteURL is returned when no API endpoint is configured.
	ErrNoSiteURL = errors.New("no wiki API endpoint configured: set site.api in the config file")

	// ErrNoPage is returned when the template page title is empty.
	ErrNoPage = errors.New("no template page specified")

	// ErrNoCategory is returned when a source category name is empty.
	ErrNoCategory = errors.New("person and deceased categories must both be set")

	// ErrInvalidMaxGroupSize is returned when the group ceiling is below one.
	ErrInvalidMaxGroupSize = errors.New("invalid max group size: must be at least 1")

	// ErrInvalidMaxAttempts is returned when fewer than one edit attempt is allowed.
	ErrInvalidMaxAttempts = errors.New("invalid max attempts: must be at least 1")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrIncompleteCredentials is returned when only one of user name and
	// password is set.
	ErrIncompleteCredentials = errors.New("incomplete credentials: user name and password must be set together")

	// ErrNoCredentials is returned when publishing without credentials.
	ErrNoCredentials = errors.New("publishing requires credentials: set them in the config file or via " +
		EnvUsername + " and " + EnvPassword)
)
