package authz

// Requirement is what a route demands of the caller.
type Requirement int

const (
	// Public routes are reachable without any credential.
	Public Requirement = iota
	// RequireAuthenticated routes demand a verified principal.
	RequireAuthenticated
)

// String returns a stable name for logging.
func (r Requirement) String() string {
	switch r {
	case Public:
		return "public"
	case RequireAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Rule binds a path pattern to a Requirement.
type Rule struct {
	Pattern     string
	Requirement Requirement
}

// Policy is an ordered rule table. Rules are evaluated in declaration order
// and the first match wins, so narrower rules must precede broader ones.
type Policy struct {
	rules      []Rule
	defaultReq Requirement
}

// NewPolicy builds a Policy whose unmatched paths require authentication.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules, defaultReq: RequireAuthenticated}
}

// WithDefault overrides the requirement applied to paths matching no rule.
func (p *Policy) WithDefault(req Requirement) *Policy {
	p.defaultReq = req
	return p
}

// Evaluate returns the requirement for path.
func (p *Policy) Evaluate(path string) Requirement {
	for _, r := range p.rules {
		if MatchPath(r.Pattern, path) {
			return r.Requirement
		}
	}
	return p.defaultReq
}

// Rules returns a copy of the rule table, in evaluation order.
func (p *Policy) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// DefaultPolicy is the route table served by the API: the root, health probe,
// authentication endpoints, API docs, and uploaded media are public, while
// everything else requires a principal. GET /api/auth/me is matched by the
// /api/auth/** rule as public at the policy layer; its handler still demands
// a principal itself.
func DefaultPolicy() *Policy {
	return NewPolicy(
		Rule{Pattern: "/", Requirement: Public},
		Rule{Pattern: "/healthcheck", Requirement: Public},
		Rule{Pattern: "/api/auth/**", Requirement: Public},
		Rule{Pattern: "/api-docs/**", Requirement: Public},
		Rule{Pattern: "/swagger-ui/**", Requirement: Public},
		Rule{Pattern: "/uploads/**", Requirement: Public},
	)
}
