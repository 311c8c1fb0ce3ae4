// Package log provides structured logging for cachebust built on log/slog,
// with automatic redaction of secrets that may appear in asset URLs.
//
// Asset references are sometimes signed or carry access tokens, for example
// CDN URLs with a signature query parameter or credentials in the userinfo
// part. Those URLs show up in debug output when every rewritten reference is
// logged, so the SecureHandler masks:
//   - attributes whose key names a secret (token, password, signature, ...)
//   - user:password@ credentials embedded in URL values
//   - values of sensitive query parameters inside URL values
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("reference skipped",
//	    "url", "https://cdn.example.com/app.js?token=abc", // token value is masked
//	)
//	slog.SetDefault(logger)
package log
