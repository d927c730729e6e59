package webapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopwise-server/internal/domain/access"
	"shopwise-server/internal/domain/session/model"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "shopwise_token"

const ctxStateKey = "session_state"

// tokenFromRequest extracts the session token from the cookie or, for
// API clients, from an Authorization bearer header.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// prefersHTML reports whether the client is a browser navigation rather
// than an API call, deciding redirect versus JSON denial.
func prefersHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html")
}

func (s *Service) restoreState(c *gin.Context) model.State {
	state, err := s.sessions.Restore(c.Request.Context(), tokenFromRequest(c))
	if err != nil {
		s.logger.WarnTag("GUARD", "session restore failed: %v", err)
		return model.Anonymous()
	}
	return state
}

func stateFrom(c *gin.Context) model.State {
	if v, ok := c.Get(ctxStateKey); ok {
		if state, ok := v.(model.State); ok {
			return state
		}
	}
	return model.Anonymous()
}

func (s *Service) deny(c *gin.Context, status int, target string) {
	if prefersHTML(c) {
		c.Redirect(http.StatusFound, target)
		c.Abort()
		return
	}
	respondError(c, status, http.StatusText(status), gin.H{"redirect": target})
	c.Abort()
}

// requireAuth admits only authenticated sessions; anonymous requests
// are sent to the login page.
func (s *Service) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := s.restoreState(c)
		if !state.Authenticated {
			s.deny(c, http.StatusUnauthorized, s.guard.Policy().LoginPath)
			return
		}
		c.Set(ctxStateKey, state)
		c.Next()
	}
}

// requireAdmin additionally requires the admin role. An authenticated
// non-admin goes to the landing page, not to login.
func (s *Service) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := s.restoreState(c)
		if !state.Authenticated {
			s.deny(c, http.StatusUnauthorized, s.guard.Policy().LoginPath)
			return
		}
		if state.Principal == nil || !state.Principal.IsAdmin() {
			s.deny(c, http.StatusForbidden, s.guard.Policy().LandingPath)
			return
		}
		c.Set(ctxStateKey, state)
		c.Next()
	}
}

// handleGuard evaluates the navigation guard for a client-side route so
// the SPA router can admit or redirect before rendering.
func (s *Service) handleGuard(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		respondError(c, http.StatusBadRequest, "path query parameter is required", nil)
		return
	}

	decision, err := s.guard.Evaluate(c.Request.Context(), tokenFromRequest(c), path)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "guard evaluation failed", nil)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"outcome":  outcomeName(decision.Outcome),
		"redirect": decision.Target,
		"state":    publicState(decision.State),
	}, "")
}

func outcomeName(o access.Outcome) string {
	switch o {
	case access.Admit:
		return "admit"
	case access.RedirectLogin:
		return "redirect_login"
	case access.RedirectLanding:
		return "redirect_landing"
	default:
		return "redirect_login"
	}
}
