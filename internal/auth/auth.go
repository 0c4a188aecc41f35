// Package auth signs the user in with Google and publishes auth-state
// transitions. The rest of the application consumes it through the
// Authenticator interface and treats "no user" as "no data".
package auth

// User identifies the signed-in account.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL"`
}

// State is the auth lifecycle phase.
type State int

const (
	// StateLoading means a cached session is still being restored.
	StateLoading State = iota
	StateSignedOut
	StateSignedIn
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSignedOut:
		return "signed-out"
	case StateSignedIn:
		return "signed-in"
	}
	return "unknown"
}

// Authenticator is the narrow auth surface the handlers consume.
type Authenticator interface {
	// CurrentUser returns the signed-in user, or false when there is none.
	CurrentUser() (User, bool)

	// SignOut drops the session and notifies state listeners.
	SignOut() error

	// OnStateChange registers fn to run on every auth-state transition. The
	// returned cancel removes the registration.
	OnStateChange(fn func(State, *User)) (cancel func())
}
