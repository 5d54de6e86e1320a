// Package logging provides structured logging for pagesmith built on Zap.
//
// Services receive a *zap.Logger through constructor injection; nothing in
// this package is ambient state. The logger is configured once in main from
// the daemon configuration and passed down.
package logging
