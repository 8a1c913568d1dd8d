// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard slog
// package.
//
// Crawled URLs often carry session identifiers or access tokens in their
// query strings. The SecureHandler masks:
//   - attributes whose key names a secret (cookie, password, token, ...)
//   - values that look like credentials (JWTs, bearer tokens, API keys)
//   - sensitive query parameters inside URL values, keeping the rest of
//     the URL readable
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("tier reference not found",
//	    "url", "http://example.com/page?sessionid=abc123", // sessionid=***REDACTED***
//	)
//	slog.SetDefault(logger)
package log
