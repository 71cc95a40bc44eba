package guard

import "github.com/spec-kit/tiffin-service/internal/domain"

// LoginPath is where every unauthenticated or expired session is sent.
const LoginPath = "/login"

// RouteRules is the static role-to-route policy: per-role allowed path
// prefixes beyond the role's own namespace, and the default home path a
// role falls back to when it requests a page it may not see. Loaded once,
// immutable for the process lifetime.
type RouteRules struct {
	publicExact    map[string]struct{}
	publicPrefixes []string
	extraPrefixes  map[domain.Role][]string
	homes          map[domain.Role]string
}

// DefaultRules returns the policy shipped with the application.
//
// Every role's allowed set is its own namespace (always implicit, see
// Authorize) plus the shared checkout flow for customers. Public paths
// cover the auth pages, the browse/catalog pages and the payment result
// pages the gateway redirects back to.
func DefaultRules() *RouteRules {
	return &RouteRules{
		publicExact: map[string]struct{}{
			"/": {},
		},
		publicPrefixes: []string{
			"/login",
			"/signup",
			"/forgot-password",
			"/reset-password",
			"/vendor-signup",
			"/restaurants",
			"/packages",
			"/payment-success",
			"/payment-failed",
		},
		extraPrefixes: map[domain.Role][]string{
			domain.RoleUser: {"/schedule-customization", "/checkout"},
		},
		homes: map[domain.Role]string{
			domain.RoleUser:     "/",
			domain.RoleVendor:   "/vendor/dashboard",
			domain.RoleAdmin:    "/admin",
			domain.RoleDelivery: "/delivery",
		},
	}
}

// Home returns the default landing path for a role.
func (r *RouteRules) Home(role domain.Role) string {
	if home, ok := r.homes[role]; ok {
		return home
	}
	return LoginPath
}

// namespace returns the path prefix a role implicitly owns.
func namespace(role domain.Role) string {
	switch role {
	case domain.RoleUser:
		return "/user"
	case domain.RoleVendor:
		return "/vendor"
	case domain.RoleAdmin:
		return "/admin"
	case domain.RoleDelivery:
		return "/delivery"
	}
	return ""
}
