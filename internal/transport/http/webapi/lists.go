package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) string {
	state := stateFrom(c)
	if state.Principal == nil {
		return ""
	}
	return state.Principal.ID
}

func (s *Service) handleLists(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"lists": s.lists.ForUser(currentUserID(c))}, "")
}

func (s *Service) handleList(c *gin.Context) {
	list, err := s.lists.Get(currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "list not found", nil)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"list": list}, "")
}

type listRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Service) handleCreateList(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "list name is required", nil)
		return
	}
	list, err := s.lists.Create(currentUserID(c), req.Name)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"list": list}, "")
}

func (s *Service) handleRenameList(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "list name is required", nil)
		return
	}
	list, err := s.lists.Rename(currentUserID(c), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, http.StatusNotFound, "list not found", nil)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"list": list}, "")
}

func (s *Service) handleDeleteList(c *gin.Context) {
	if err := s.lists.Delete(currentUserID(c), c.Param("id")); err != nil {
		respondError(c, http.StatusNotFound, "list not found", nil)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "list deleted")
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (s *Service) handleAddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "productId is required", nil)
		return
	}
	list, err := s.lists.AddItem(currentUserID(c), c.Param("id"), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"list": list}, "")
}

func (s *Service) handleToggleItem(c *gin.Context) {
	list, err := s.lists.TogglePurchased(currentUserID(c), c.Param("id"), c.Param("itemID"))
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"list": list}, "")
}

func (s *Service) handleRemoveItem(c *gin.Context) {
	list, err := s.lists.RemoveItem(currentUserID(c), c.Param("id"), c.Param("itemID"))
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"list": list}, "")
}
