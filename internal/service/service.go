// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// data from the handler, applies the domain rules, and calls repository
// methods to read and persist data.
package service
