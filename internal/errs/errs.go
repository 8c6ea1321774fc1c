// Package errs defines the error shapes the API hands back to clients.
//
// Every failure a handler can produce is an *HTTPError: it knows its HTTP
// status, a machine-friendly code and the human-readable message that ends
// up in the response body.
package errs
