package ratelimit

import (
	"fmt"
	"strings"
	"time"
)

// Rule gives the routes matching Pattern their own budget. Pattern uses the ServeMux syntax
// "METHOD /path/{param}", and a Limit of 0 exempts matching routes entirely.
type Rule struct {
	Pattern string
	Limit   int
	Window  time.Duration
	Burst   int // defaults to Limit when 0
}

// DefaultRules returns the built-in per-route budgets.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "GET /health", Limit: 0},

		// Credential endpoints sit in front of bcrypt
		{Pattern: "POST /auth/login", Limit: 10, Window: time.Minute, Burst: 5},
		{Pattern: "POST /auth/register", Limit: 10, Window: time.Hour, Burst: 3},
		{Pattern: "PUT /me/password", Limit: 10, Window: time.Hour, Burst: 3},

		// Bulk scoring and search fan out over many profiles
		{Pattern: "POST /jobs/{id}/rank", Limit: 30, Window: time.Minute, Burst: 5},
		{Pattern: "GET /candidates/search", Limit: 60, Window: time.Minute, Burst: 10},
		{Pattern: "POST /match", Limit: 300, Window: time.Minute, Burst: 30},
	}
}

// route is a Rule with its pattern split for matching.
type route struct {
	Rule
	method   string
	segments []string
}

func compileRules(rules []Rule) ([]route, error) {
	routes := make([]route, 0, len(rules))
	for _, r := range rules {
		method, path, ok := strings.Cut(r.Pattern, " ")
		if !ok || method == "" || !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("invalid rate limit pattern %q: want \"METHOD /path\"", r.Pattern)
		}
		if r.Limit > 0 && r.Window <= 0 {
			return nil, fmt.Errorf("invalid rate limit rule %q: window must be positive", r.Pattern)
		}
		routes = append(routes, route{Rule: r, method: method, segments: splitPath(path)})
	}
	return routes, nil
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// matches reports whether the request method and path fit the route. A "{name}" segment
// matches any single non-empty path segment.
func (rt *route) matches(method string, segments []string) bool {
	if rt.method != method || len(rt.segments) != len(segments) {
		return false
	}
	for i, want := range rt.segments {
		if strings.HasPrefix(want, "{") && strings.HasSuffix(want, "}") {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if want != segments[i] {
			return false
		}
	}
	return true
}

// match returns the first route fitting the request, or nil.
func match(routes []route, method, path string) *route {
	segments := splitPath(path)
	for i := range routes {
		if routes[i].matches(method, segments) {
			return &routes[i]
		}
	}
	return nil
}
