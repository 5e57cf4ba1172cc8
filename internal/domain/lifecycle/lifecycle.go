// Package lifecycle holds shared constants for application start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown work such as
// pinging the database or draining the HTTP server.
const DefaultTimeout = 10 * time.Second
