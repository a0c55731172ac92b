package guard

import (
	"context"
	"sync"

	"eventsctl/internal/authz"
	"eventsctl/internal/log"
	"eventsctl/internal/session"
)

// State is the route guard's position in its evaluation cycle.
type State int

const (
	// StateUnauthenticated means no token is present; protected content is
	// never rendered, a login prompt is shown instead.
	StateUnauthenticated State = iota
	// StateResolvingRole means a token is present and role resolution is in
	// flight; protected content is withheld to avoid a flash of
	// unauthorized content.
	StateResolvingRole
	// StateAuthorized means the freshly resolved role satisfies the policy.
	StateAuthorized
	// StateForbidden means the resolved role does not satisfy the policy.
	StateForbidden
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateResolvingRole:
		return "resolving-role"
	case StateAuthorized:
		return "authorized"
	case StateForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// AccessPolicy is the role requirement attached to a protected view.
// An empty RequiredRoles set means "authenticated only".
type AccessPolicy struct {
	RequiredRoles []authz.Role
}

// Authenticated is the policy for views any logged-in user may see
func Authenticated() AccessPolicy {
	return AccessPolicy{}
}

// RequireRoles is the policy for views restricted to the given roles
func RequireRoles(roles ...authz.Role) AccessPolicy {
	return AccessPolicy{RequiredRoles: roles}
}

// Allows reports whether the role satisfies the policy
func (p AccessPolicy) Allows(role authz.Role) bool {
	if len(p.RequiredRoles) == 0 {
		return true
	}
	for _, r := range p.RequiredRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Decision is the outcome of one guard evaluation.
type Decision struct {
	State State
	Role  authz.Role
	// Seq orders evaluations; a decision is applied only while it is the
	// newest one issued, so a slow stale resolution never wins over a
	// newer navigation.
	Seq uint64
}

// Decide is the pure access decision: (session, freshly resolved role,
// policy) -> state. It has no side effects and no UI lifecycle coupling.
func Decide(sess session.Session, role authz.Role, policy AccessPolicy) State {
	if !sess.Authenticated() {
		return StateUnauthenticated
	}
	if policy.Allows(role) {
		return StateAuthorized
	}
	return StateForbidden
}

// Guard admits or denies protected views for the current session.
//
// Every evaluation re-loads the session and re-resolves the role; nothing is
// terminal. The guard never surfaces resolution failures as a distinct
// state: the resolver absorbs them into the default role, which may
// legitimately produce StateForbidden.
type Guard struct {
	store    session.Store
	resolver *authz.Resolver
	logger   *log.Logger

	mu    sync.Mutex
	state State
	next  uint64 // seq handed to the most recent evaluation
}

// New creates a guard over the given session store and role resolver
func New(store session.Store, resolver *authz.Resolver, logger *log.Logger) *Guard {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Guard{
		store:    store,
		resolver: resolver,
		logger:   logger,
		state:    StateUnauthenticated,
	}
}

// Evaluate runs one full evaluation cycle against the policy and returns the
// resulting decision. Safe for concurrent use; when evaluations overlap, the
// most recently started one determines the guard's committed state.
func (g *Guard) Evaluate(ctx context.Context, policy AccessPolicy) Decision {
	seq := g.begin()

	sess := g.store.Load()
	if !sess.Authenticated() {
		// No token: decided without any network traffic, and without ever
		// passing through the resolving state.
		d := Decision{State: StateUnauthenticated, Role: "", Seq: seq}
		g.apply(d)
		return d
	}

	g.applyTransient(seq, StateResolvingRole)

	res := g.resolver.Resolve(ctx, sess.Username)
	g.refreshStoredRole(sess, res.Role)

	d := Decision{State: Decide(sess, res.Role, policy), Role: res.Role, Seq: seq}
	g.apply(d)

	g.logger.Debug("route guard decision",
		"state", d.State.String(),
		"role", res.Role.String(),
		"username", sess.Username)

	return d
}

// State returns the guard's committed state
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Stale reports whether the decision has been superseded by a newer
// evaluation. UI code drops stale decisions instead of rendering them.
func (g *Guard) Stale(d Decision) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return d.Seq < g.next
}

func (g *Guard) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return g.next
}

// apply commits the decision unless a newer evaluation has started since
func (g *Guard) apply(d Decision) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if d.Seq == g.next {
		g.state = d.State
	}
}

// applyTransient publishes an intermediate state for the given evaluation
func (g *Guard) applyTransient(seq uint64, s State) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seq == g.next {
		g.state = s
	}
}

// refreshStoredRole writes the freshly resolved role back to the session
// store so later loads start from the corrected value.
func (g *Guard) refreshStoredRole(sess session.Session, role authz.Role) {
	if sess.Role == role {
		return
	}
	if err := g.store.Save(sess.WithRole(role)); err != nil {
		g.logger.WithError(err).Warn("could not persist refreshed role")
	}
}
