package handlers

import (
	"smartshop/internal/models"
	"smartshop/internal/services/catalog"
	"smartshop/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogService catalog.Service
}

func NewCatalogHandler(catalogService catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.catalogService.ListProducts(c.Context(), c.Params("category"))
	if err != nil {
		return response.ServerError(c, "Failed to fetch products")
	}
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(products)
}
