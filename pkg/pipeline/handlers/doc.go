// Package handlers provides a standard set of middleware for the
// pipeline package: repeat-until-done and retry control flow, traced
// invocations, network send/receive, and an explicit chain terminator.
//
// The generic middleware here are bounded by small capability
// interfaces (Repeatable, Sendable, Receivable, Networkable) rather
// than concrete context types; a context opts in by implementing the
// capability and the middleware recovers it through a checked downcast.
package handlers
