package bridge

import "errors"

// errNotHydrated guards against a write racing ahead of the initial
// load, which would overwrite durable state with empty defaults.
var errNotHydrated = errors.New("bridge: persist before hydration")
