// Package middleware holds everything that runs around a handler.
//
// Two layers exist. Global middleware (recover, request id, tracing,
// request-scoped logger, CORS) wraps every request. Inside it runs the
// request Pipeline: a fixed, ordered list of stages that parse the body,
// serve static files, set security headers, log, and authenticate. Each
// stage explicitly continues or terminates; see Pipeline.
package middleware
