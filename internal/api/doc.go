// Package api is the HTTP client for the bot's dashboard backend.
//
// The backend keeps the logged-in Discord user in a cookie session; the
// client replays that cookie on every request. Each call is a single attempt:
// there are no retries and no caching. Non-2xx responses come back as
// *StatusError, and a 401 additionally matches ErrUnauthenticated.
package api
