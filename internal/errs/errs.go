// Package errs defines the HTTP error types returned to API clients.
//
// Every error that leaves a handler is converted into an HTTPError so clients
// receive a consistent status code and, where appropriate, a JSON envelope with
// field-level details.
package errs
