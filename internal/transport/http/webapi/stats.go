package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopwise-server/internal/domain/stats"
)

// handleDashboard returns the admin figures for admin principals and
// the personal figures for everyone else.
func (s *Service) handleDashboard(c *gin.Context) {
	state := stateFrom(c)
	if state.Principal != nil && state.Principal.IsAdmin() {
		respondSuccess(c, http.StatusOK, gin.H{
			"statistics": stats.ForAdmin(),
		}, "")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"statistics": stats.ForUser(currentUserID(c)),
	}, "")
}

func (s *Service) handlePricing(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"tiers": stats.PricingTiers()}, "")
}
