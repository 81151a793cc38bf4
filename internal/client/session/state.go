package session

// Status names the three session states.
type Status int

const (
	StatusChecking Status = iota
	StatusAuthenticated
	StatusNotAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusAuthenticated:
		return "authenticated"
	case StatusNotAuthenticated:
		return "not-authenticated"
	default:
		return "unknown"
	}
}

// User is the identity held while authenticated.
type User struct {
	UID  string
	Name string
}

// State is one of Checking, Authenticated or NotAuthenticated. An authenticated
// state always carries a user.
type State interface {
	Status() Status
	sealed()
}

// Checking is the initial state and the state while a login or registration is in flight.
type Checking struct{}

// Authenticated holds the user the backend vouched for.
type Authenticated struct {
	User User
}

// NotAuthenticated optionally carries a transient error for display.
type NotAuthenticated struct {
	ErrorMessage string
}

func (Checking) Status() Status         { return StatusChecking }
func (Authenticated) Status() Status    { return StatusAuthenticated }
func (NotAuthenticated) Status() Status { return StatusNotAuthenticated }

func (Checking) sealed()         {}
func (Authenticated) sealed()    {}
func (NotAuthenticated) sealed() {}
