package types

// Route names a top-level screen the app can navigate to.
type Route string

// String returns the string form of the route.
func (r Route) String() string { return string(r) }

// Known routes.
const (
	RouteLanding  Route = "Landing"
	RouteLogin    Route = "Login"
	RouteRegister Route = "Register"
	RouteHome     Route = "Home"
)

// FileRef points at a locally picked file. URI may be a plain path or a
// file:// URI; Name is a best-effort display name and may be empty.
type FileRef struct {
	URI         string `json:"uri"`
	Name        string `json:"name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// IsZero reports whether no file was picked.
func (f FileRef) IsZero() bool { return f.URI == "" }

// NotifyLevel grades a user-facing alert.
type NotifyLevel int

const (
	NotifyInfo NotifyLevel = iota
	NotifyWarning
	NotifyError
)
