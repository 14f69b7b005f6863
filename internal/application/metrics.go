package application

import "expvar"

// Exposed under /api/debug/vars when debug metrics are enabled.
var (
	signups         = expvar.NewInt("signups_total")
	signupConflicts = expvar.NewInt("signup_conflicts_total")
	logins          = expvar.NewInt("logins_total")
	loginFailures   = expvar.NewInt("login_failures_total")
)
