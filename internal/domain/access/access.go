// Package access decides whether a navigation may proceed. The guard
// restores the session from its token first, then checks the requested
// path against the route policy and emits one of three outcomes: admit,
// redirect to login, or redirect to the signed-in landing page.
package access

import (
	"context"
	"strings"

	"shopwise-server/internal/domain/session/model"
)

// Requirement is the protection level of a route.
type Requirement int

const (
	// Public routes render for everyone.
	Public Requirement = iota
	// Authenticated routes require a signed-in principal.
	Authenticated
	// AdminOnly routes additionally require the admin role.
	AdminOnly
)

// Outcome is the guard's verdict for one navigation attempt.
type Outcome int

const (
	// Admit renders the requested destination.
	Admit Outcome = iota
	// RedirectLogin sends the visitor to the login page. The redirect
	// replaces history so back-navigation does not re-enter the
	// protected destination.
	RedirectLogin
	// RedirectLanding sends an authenticated but under-privileged
	// visitor to the default signed-in landing page, never to login.
	RedirectLanding
)

// Decision pairs the outcome with its redirect target (empty on Admit)
// and the session state the evaluation was based on.
type Decision struct {
	Outcome Outcome
	Target  string
	State   model.State
}

// Policy maps path prefixes to protection levels. Longest matching
// prefix wins; unlisted paths fall back to DefaultRequirement.
type Policy struct {
	LoginPath          string
	LandingPath        string
	DefaultRequirement Requirement
	rules              []rule
}

type rule struct {
	prefix      string
	requirement Requirement
}

// DefaultPolicy is the application's route table.
func DefaultPolicy() *Policy {
	p := &Policy{
		LoginPath:          "/login",
		LandingPath:        "/dashboard",
		DefaultRequirement: Public,
	}
	p.Add("/", Public)
	p.Add("/login", Public)
	p.Add("/register", Public)
	p.Add("/pricing", Authenticated)
	p.Add("/dashboard", Authenticated)
	p.Add("/shopping-lists", Authenticated)
	p.Add("/stores", Authenticated)
	p.Add("/search", Authenticated)
	p.Add("/admin", AdminOnly)
	return p
}

// Add registers a path prefix with its protection level.
func (p *Policy) Add(prefix string, req Requirement) {
	p.rules = append(p.rules, rule{prefix: prefix, requirement: req})
}

// Requirement resolves the protection level for a path by longest
// matching prefix.
func (p *Policy) Requirement(path string) Requirement {
	best := -1
	req := p.DefaultRequirement
	for _, r := range p.rules {
		if !matchesPrefix(path, r.prefix) {
			continue
		}
		if len(r.prefix) > best {
			best = len(r.prefix)
			req = r.requirement
		}
	}
	return req
}

func matchesPrefix(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Restorer rebuilds session state from a previously issued token.
type Restorer interface {
	Restore(ctx context.Context, token string) (model.State, error)
}

// Guard evaluates navigation attempts against a policy.
type Guard struct {
	policy   *Policy
	sessions Restorer
}

// NewGuard wires a guard to its session source and route policy.
func NewGuard(sessions Restorer, policy *Policy) *Guard {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Guard{policy: policy, sessions: sessions}
}

// Policy returns the route table the guard evaluates against.
func (g *Guard) Policy() *Policy {
	return g.policy
}

// Evaluate restores the session from the token and decides the outcome
// for the requested path. Evaluation happens once per navigation; state
// changes elsewhere are only observed on the next attempt.
func (g *Guard) Evaluate(ctx context.Context, token, path string) (Decision, error) {
	state, err := g.sessions.Restore(ctx, token)
	if err != nil {
		return Decision{}, err
	}
	return g.Decide(state, path), nil
}

// Decide applies the policy to an already-restored state.
func (g *Guard) Decide(state model.State, path string) Decision {
	req := g.policy.Requirement(path)
	switch req {
	case Public:
		return Decision{Outcome: Admit, State: state}
	case Authenticated:
		if !state.Authenticated {
			return Decision{Outcome: RedirectLogin, Target: g.policy.LoginPath, State: state}
		}
		return Decision{Outcome: Admit, State: state}
	case AdminOnly:
		if !state.Authenticated {
			return Decision{Outcome: RedirectLogin, Target: g.policy.LoginPath, State: state}
		}
		if state.Principal == nil || !state.Principal.IsAdmin() {
			return Decision{Outcome: RedirectLanding, Target: g.policy.LandingPath, State: state}
		}
		return Decision{Outcome: Admit, State: state}
	default:
		// unknown requirement fails closed
		return Decision{Outcome: RedirectLogin, Target: g.policy.LoginPath, State: state}
	}
}
