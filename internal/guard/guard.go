package guard

import (
	"net/url"
	"strings"

	"github.com/spec-kit/tiffin-service/internal/domain"
	"github.com/spec-kit/tiffin-service/internal/session"
)

// Redirect messages shown by the login page. URL-encoded into the
// `message` query parameter together with the originally intended path
// in `redirect`, which the login page uses to bounce back after login.
const (
	MsgLoginRequired  = "Please login to continue"
	MsgSessionExpired = "Session expired, please login again"
	MsgSessionInvalid = "Session invalid, please login again"
)

// Decision is the outcome of authorizing one navigation. Exactly one of
// Allowed or a redirect location is set; redirects never carry an error.
type Decision struct {
	Allowed      bool
	Location     string
	ClearSession bool
}

// Allow is the decision that renders the requested page.
var Allow = Decision{Allowed: true}

// RedirectTo builds a plain redirect decision.
func RedirectTo(location string) Decision {
	return Decision{Location: location}
}

// LoginRedirect builds a redirect to the login page carrying a reason
// message and the originally intended path.
func LoginRedirect(message, intended string) Decision {
	q := url.Values{}
	q.Set("message", message)
	if intended != "" {
		q.Set("redirect", intended)
	}
	return Decision{Location: LoginPath + "?" + q.Encode()}
}

// TokenExpiredFunc reports whether a bearer token is past its expiry.
type TokenExpiredFunc func(token string) bool

// Guard evaluates the route policy for each navigation.
type Guard struct {
	rules   *RouteRules
	expired TokenExpiredFunc
}

// New builds a guard over the given rules. expired is consulted for every
// authenticated navigation before the role is trusted.
func New(rules *RouteRules, expired TokenExpiredFunc) *Guard {
	return &Guard{rules: rules, expired: expired}
}

// Rules exposes the active policy.
func (g *Guard) Rules() *RouteRules { return g.rules }

// IsPublic reports whether path is reachable without a session. The home
// page matches exactly; all other public entries match as path prefixes.
// An empty or unnormalized path is never public.
func (g *Guard) IsPublic(path string) bool {
	if path == "" || !strings.HasPrefix(path, "/") {
		return false
	}
	if _, ok := g.rules.publicExact[path]; ok {
		return true
	}
	for _, prefix := range g.rules.publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Authorize decides one navigation attempt. sess is nil when no session
// exists. The caller must clear the session before following any decision
// with ClearSession set; Authorize itself has no side effects, so calling
// it twice with unchanged state yields the same decision.
func (g *Guard) Authorize(sess *session.Session, path string) Decision {
	if g.IsPublic(path) {
		return Allow
	}

	if sess == nil || sess.Token == "" {
		return LoginRedirect(MsgLoginRequired, path)
	}

	if g.expired(sess.Token) {
		d := LoginRedirect(MsgSessionExpired, path)
		d.ClearSession = true
		return d
	}

	role, ok := domain.ParseRole(sess.Role)
	if !ok {
		d := LoginRedirect(MsgSessionInvalid, path)
		d.ClearSession = true
		return d
	}

	if ns := namespace(role); ns != "" && strings.HasPrefix(path, ns) {
		return Allow
	}
	for _, prefix := range g.rules.extraPrefixes[role] {
		if strings.HasPrefix(path, prefix) {
			return Allow
		}
	}

	// Authenticated but not allowed here: send the caller home, not to
	// login. This is a policy miss, not a trust failure.
	return RedirectTo(g.rules.Home(role))
}
