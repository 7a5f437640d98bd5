// Package client talks to the job tracker REST API on behalf of the CLI.
//
// HTTPClient implements Client. It keeps the bearer token obtained by Login
// (or restored from the session store via SetToken) and attaches it to every
// /api/jobs request.
//
// Non-2xx responses map to sentinel errors that callers match with errors.Is:
//
//	400       ErrBadRequest (wrapped with the server's message)
//	401, 403  ErrUnauthorized
//	404       ErrNotFound
//	5xx       ErrServer
//
// Transport failures (connection refused, timeouts) map to ErrUnavailable.
package client
