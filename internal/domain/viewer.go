package domain

// Viewer identifies the caller of a request. A nil *Viewer is an anonymous caller.
type Viewer struct {
	UserID   string
	Username string
	IsStaff  bool
}

// Authenticated reports whether v identifies a user.
func (v *Viewer) Authenticated() bool {
	return v != nil && v.UserID != ""
}
