package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopwise-server/internal/domain/catalog"
)

func (s *Service) handleStores(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"stores": s.catalog.Stores()}, "")
}

func (s *Service) handleStore(c *gin.Context) {
	store, ok := s.catalog.Store(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "store not found", nil)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"store": store}, "")
}

// handleProducts searches the catalog. q matches product names
// case-insensitively; category filters by exact match, with "all"
// meaning no filter.
func (s *Service) handleProducts(c *gin.Context) {
	results := s.catalog.Search(catalog.Query{
		Term:     c.Query("q"),
		Category: c.Query("category"),
	})
	respondSuccess(c, http.StatusOK, gin.H{"products": results}, "")
}

func (s *Service) handleCategories(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"categories": s.catalog.Categories()}, "")
}

type productRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	StoreID  string  `json:"storeId" binding:"required"`
	Location string  `json:"location"`
	Aisle    string  `json:"aisle"`
	Shelf    string  `json:"shelf"`
}

func (s *Service) handleAdminProducts(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"products": s.catalog.Products()}, "")
}

func (s *Service) handleAdminCreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name and storeId are required", nil)
		return
	}

	created, err := s.catalog.AddProduct(catalog.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		StoreID:  req.StoreID,
		Location: req.Location,
		Aisle:    req.Aisle,
		Shelf:    req.Shelf,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"product": created}, "")
}

func (s *Service) handleAdminUpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name and storeId are required", nil)
		return
	}

	updated, err := s.catalog.UpdateProduct(catalog.Product{
		ID:       c.Param("id"),
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		StoreID:  req.StoreID,
		Location: req.Location,
		Aisle:    req.Aisle,
		Shelf:    req.Shelf,
	})
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"product": updated}, "")
}

func (s *Service) handleAdminDeleteProduct(c *gin.Context) {
	if err := s.catalog.RemoveProduct(c.Param("id")); err != nil {
		respondError(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "product deleted")
}
