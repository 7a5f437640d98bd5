// Package api exposes the job tracker over HTTP/JSON using gin.
//
// Routes:
//
//	POST   /auth/register   create an account
//	POST   /auth/login      exchange credentials for a bearer token
//	GET    /health          liveness plus database ping
//	GET    /api/jobs        list the caller's jobs
//	POST   /api/jobs        create a job
//	GET    /api/jobs/:id    fetch one job
//	PUT    /api/jobs/:id    replace the editable fields of a job
//	DELETE /api/jobs/:id    delete a job
//
// Every /api route sits behind the authorization gate (see Authenticate).
package api
