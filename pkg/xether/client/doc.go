// Package client implements the HTTP client the xether CLI uses to talk to
// the Xether backend. Every call goes through a single retry loop that adds
// bearer authentication and a request id, retries transport failures with
// exponential backoff and turns 401 responses into session invalidation.
// Typed services (Teams, Projects, Datasets, ...) sit on top of it.
package client
