package deskmates

// Identity headers the platform uses for server-side scoping. There is no
// bearer-token mechanism; scoping is entirely header based.
const (
	HeaderUserID     = "X-User-ID"
	HeaderEmployeeID = "X-Employee-ID"
)

const (
	anonymousUserID   = "anonymous"
	defaultEmployeeID = "default"
)

// Session supplies the identity attached to every request: the calling user
// and the currently active employee context. Implementations must be safe for
// concurrent reads; the pipeline never writes through this interface.
type Session interface {
	UserID() string
	EmployeeID() string
}

// AnonymousSession is the session used when none is configured. It reports
// the platform's sentinel identity values.
type AnonymousSession struct{}

func (AnonymousSession) UserID() string     { return anonymousUserID }
func (AnonymousSession) EmployeeID() string { return defaultEmployeeID }

// StaticSession pins the identity headers to fixed values. Empty fields fall
// back to the anonymous sentinels.
type StaticSession struct {
	User     string
	Employee string
}

func (s StaticSession) UserID() string {
	if s.User == "" {
		return anonymousUserID
	}
	return s.User
}

func (s StaticSession) EmployeeID() string {
	if s.Employee == "" {
		return defaultEmployeeID
	}
	return s.Employee
}
