package health

import "sync/atomic"

// notReady is zero-valued so a freshly started process reports ready as soon
// as its dependency probes pass.
var notReady atomic.Bool

// SetReady flips the process-wide readiness gate. The API server turns it off
// at the start of graceful shutdown so load balancers stop routing new
// traffic while in-flight requests drain.
func SetReady(v bool) {
	notReady.Store(!v)
}

func accepting() bool {
	return !notReady.Load()
}
