// Package log provides secure logging built on top of the standard slog
// package.
//
// The SecureHandler masks sensitive attribute values before they reach the
// output:
//   - credentials and tokens by key name (password, lgpassword, csrftoken)
//   - HTTP headers such as Cookie and Authorization
//   - values that look like secrets (bot passwords, MediaWiki tokens, JWTs)
//
// Even at debug level, secrets are masked, so logs of a bot run can be
// shared safely.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, log.LevelFor(verbose, quiet))
//	logger.Info("logged in", "user", user, "password", password) // password is masked
//	slog.SetDefault(logger)
package log
