package webapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopwise-server/internal/domain/session/model"
	"shopwise-server/internal/domain/stats"
)

func (s *Service) handleAdminUsers(c *gin.Context) {
	users := s.users.List()
	out := make([]publicPrincipal, 0, len(users))
	for _, u := range users {
		out = append(out, publicPrincipal{
			ID:        u.ID,
			Username:  u.Username,
			Role:      string(u.Role),
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}
	respondSuccess(c, http.StatusOK, gin.H{"users": out}, "")
}

type adminUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func roleFrom(raw string) model.Role {
	if raw == string(model.RoleAdmin) {
		return model.RoleAdmin
	}
	return model.RoleUser
}

func (s *Service) handleAdminCreateUser(c *gin.Context) {
	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "username is required", nil)
		return
	}

	p := model.Principal{
		Username:  req.Username,
		Password:  req.Password,
		Role:      roleFrom(req.Role),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.users.Add(p); err != nil {
		respondError(c, http.StatusConflict, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusCreated, nil, "user created")
}

func (s *Service) handleAdminUpdateUser(c *gin.Context) {
	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "username is required", nil)
		return
	}

	id := c.Param("id")
	existing, ok := s.users.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "user not found", nil)
		return
	}

	password := req.Password
	if password == "" {
		password = existing.Password
	}
	p := model.Principal{
		ID:        id,
		Username:  req.Username,
		Password:  password,
		Role:      roleFrom(req.Role),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.users.Update(p); err != nil {
		respondError(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "user updated")
}

func (s *Service) handleAdminDeleteUser(c *gin.Context) {
	id := c.Param("id")
	state := stateFrom(c)
	if state.Principal != nil && state.Principal.ID == id {
		respondError(c, http.StatusBadRequest, "cannot delete the signed-in account", nil)
		return
	}
	if err := s.users.Remove(id); err != nil {
		respondError(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "user deleted")
}

func (s *Service) handleAdminStats(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"statistics": stats.ForAdmin()}, "")
}

func (s *Service) handleAdminActivity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}
	respondSuccess(c, http.StatusOK, gin.H{"events": s.activity.Recent(limit)}, "")
}
