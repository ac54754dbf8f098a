package entity

// PermissionSnapshot is a complete, self-consistent copy of the permission
// state for one profile: the default decision plus the allow and block lists.
// Change propagation always carries whole snapshots (or whole lists), never
// deltas, so out-of-order delivery cannot produce a merged, inconsistent view.
type PermissionSnapshot struct {
	Default Decision
	Allowed []Origin
	Blocked []Origin
}

// Requester identifies the renderer-side caller waiting on a permission
// request: an opaque (process, route, request) tuple.
type Requester struct {
	ProcessID int
	RouteID   int
	RequestID int
}
