package domain

// Phase is the lifecycle position of a Session.
type Phase string

const (
	PhaseUnresolved    Phase = "unresolved"
	PhaseAuthenticated Phase = "authenticated"
	PhaseAnonymous     Phase = "anonymous"
)

// Session is the client-side record of who is logged in.
// IsAuthenticated is true iff User is non-nil.
type Session struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"is_authenticated"`
	IsLoading       bool   `json:"is_loading"`
	Error           string `json:"error,omitempty"`
}

// InitialSession is the state before startup resolution has run.
func InitialSession() Session {
	return Session{IsLoading: true}
}

// Phase derives the lifecycle position from the flags.
func (s Session) Phase() Phase {
	switch {
	case s.User != nil:
		return PhaseAuthenticated
	case s.IsLoading:
		return PhaseUnresolved
	default:
		return PhaseAnonymous
	}
}

// Clone returns a copy of s that shares no memory with it.
func (s Session) Clone() Session {
	s.User = s.User.Clone()
	return s
}

// ActionType tags an Action.
type ActionType string

const (
	ActionLoginStart   ActionType = "LOGIN_START"
	ActionLoginSuccess ActionType = "LOGIN_SUCCESS"
	ActionLoginFailure ActionType = "LOGIN_FAILURE"
	ActionLogout       ActionType = "LOGOUT"
	ActionSetLoading   ActionType = "SET_LOADING"
	ActionClearError   ActionType = "CLEAR_ERROR"
)

// Action is a tagged session event. Only the fields relevant to Type are read.
type Action struct {
	Type    ActionType
	User    *User  // LOGIN_SUCCESS
	Error   string // LOGIN_FAILURE
	Loading bool   // SET_LOADING
}

func LoginStart() Action { return Action{Type: ActionLoginStart} }
func LoginSuccess(u *User) Action { return Action{Type: ActionLoginSuccess, User: u} }
func LoginFailure(msg string) Action { return Action{Type: ActionLoginFailure, Error: msg} }
func LogoutAction() Action { return Action{Type: ActionLogout} }
func SetLoading(loading bool) Action { return Action{Type: ActionSetLoading, Loading: loading} }
func ClearErrorAction() Action { return Action{Type: ActionClearError} }

// Reduce applies a to s and returns the next state. It has no side effects;
// persistence happens in the caller after the transition.
func Reduce(s Session, a Action) Session {
	switch a.Type {
	case ActionLoginStart:
		s.IsLoading = true
		s.Error = ""
	case ActionLoginSuccess:
		if a.User == nil {
			return Reduce(s, LoginFailure("login succeeded without a user"))
		}
		s.User = a.User.Clone()
		s.IsAuthenticated = true
		s.IsLoading = false
		s.Error = ""
	case ActionLoginFailure:
		s.User = nil
		s.IsAuthenticated = false
		s.IsLoading = false
		s.Error = a.Error
	case ActionLogout:
		s.User = nil
		s.IsAuthenticated = false
		s.IsLoading = false
		s.Error = ""
	case ActionSetLoading:
		s.IsLoading = a.Loading
	case ActionClearError:
		s.Error = ""
	}
	return s
}
