package helpers

import "github.com/gin-gonic/gin"

// CallerKey is where the auth middleware stores the Caller in the gin context.
const CallerKey = "caller"

// Caller is the identity extracted from the request headers. UserID comes
// from x-user-id; IsAdmin is true only when x-admin-passcode exactly matches
// the configured secret. This is a capability flag, not a verified identity.
type Caller struct {
	HostID  string
	UserID  string
	IsAdmin bool
}

func (c *Caller) LoggedIn() bool {
	return c.UserID != ""
}

// CanAccess reports whether the caller may act on an event-scoped resource:
// admins always, otherwise only members.
func (c *Caller) CanAccess(isMember bool) bool {
	return c.IsAdmin || isMember
}

func CallerFrom(c *gin.Context) (*Caller, bool) {
	v, exists := c.Get(CallerKey)
	if !exists {
		return nil, false
	}
	caller, ok := v.(*Caller)
	return caller, ok
}
