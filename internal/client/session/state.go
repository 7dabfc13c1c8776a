package session

import "github.com/atinyakov/FotoShop/internal/models"

// Status tags the two session states.
type Status int

const (
	Anonymous Status = iota
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// State is an immutable session snapshot. The zero value is anonymous; an
// authenticated State always carries both a token and a valid user.
type State struct {
	status Status
	token  string
	user   models.User
}

// NewAuthenticated builds an authenticated state, or returns
// ErrInvalidSession when the token or user is incomplete.
func NewAuthenticated(token string, user models.User) (State, error) {
	if token == "" || !validUser(user) {
		return State{}, ErrInvalidSession
	}
	return State{status: Authenticated, token: token, user: user}, nil
}

func (s State) Status() Status { return s.status }

func (s State) IsAuthenticated() bool { return s.status == Authenticated }

// Identity returns the token and user of an authenticated state; ok is false
// for an anonymous one.
func (s State) Identity() (token string, user models.User, ok bool) {
	if s.status != Authenticated {
		return "", models.User{}, false
	}
	return s.token, s.user, true
}

func validUser(u models.User) bool {
	return u.ID > 0 && u.Name != "" && u.Email != ""
}
