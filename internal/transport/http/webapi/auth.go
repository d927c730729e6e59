package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopwise-server/internal/domain/session"
	"shopwise-server/internal/domain/session/model"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// publicPrincipal is the principal as exposed to clients. The stored
// password never leaves the server.
type publicPrincipal struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func publicState(state model.State) gin.H {
	out := gin.H{"authenticated": state.Authenticated}
	if state.Principal != nil {
		out["principal"] = publicPrincipal{
			ID:        state.Principal.ID,
			Username:  state.Principal.Username,
			Role:      string(state.Principal.Role),
			Email:     state.Principal.Email,
			FirstName: state.Principal.FirstName,
			LastName:  state.Principal.LastName,
		}
	}
	if state.LastError != "" {
		out["error"] = state.LastError
	}
	return out
}

func (s *Service) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(s.cfg.Session.TokenTTL.Std().Seconds())
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
}

func (s *Service) clearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

func (s *Service) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "username and password are required", nil)
		return
	}

	state, token, err := s.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	if !state.Authenticated {
		respondError(c, http.StatusUnauthorized, state.LastError, publicState(state))
		return
	}

	s.setSessionCookie(c, token)
	respondSuccess(c, http.StatusOK, gin.H{
		"state": publicState(state),
		"token": token,
	}, "")
}

func (s *Service) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "username and password are required", nil)
		return
	}

	state, token, err := s.sessions.Register(c.Request.Context(), session.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	if !state.Authenticated {
		respondError(c, http.StatusConflict, state.LastError, publicState(state))
		return
	}

	s.setSessionCookie(c, token)
	respondSuccess(c, http.StatusCreated, gin.H{
		"state": publicState(state),
		"token": token,
	}, "")
}

func (s *Service) handleLogout(c *gin.Context) {
	state, err := s.sessions.Logout(c.Request.Context(), tokenFromRequest(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "logout failed", nil)
		return
	}

	s.clearSessionCookie(c)
	respondSuccess(c, http.StatusOK, gin.H{"state": publicState(state)}, "")
}

// handleSession restores the state for the presented token. Anonymous
// is a success response, not an error, so the SPA can render either way.
func (s *Service) handleSession(c *gin.Context) {
	state, err := s.sessions.Restore(c.Request.Context(), tokenFromRequest(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "session restore failed", nil)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"state": publicState(state)}, "")
}
