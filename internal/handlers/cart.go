package handlers

import (
	"smartshop/internal/middleware"
	"smartshop/internal/models"
	"smartshop/internal/services/cart"
	"smartshop/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	cartService cart.Service
}

func NewCartHandler(cartService cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var input struct {
		Name  string `json:"name"`
		Price int    `json:"price"`
		Img   string `json:"img"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID := middleware.UserID(c)
	if err := h.cartService.Add(c.Context(), userID, input.Name, input.Price, input.Img); err != nil {
		if err == cart.ErrInvalidItem {
			return response.BadRequest(c, "Item name is required")
		}
		return response.ServerError(c, "Failed to add item")
	}

	return c.JSON(fiber.Map{"message": "Item added/updated"})
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	items, err := h.cartService.Items(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.ServerError(c, "Failed to fetch cart")
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return c.JSON(items)
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid item ID")
	}

	var input struct {
		Change int `json:"change"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID := middleware.UserID(c)
	if err := h.cartService.Adjust(c.Context(), userID, uint(itemID), input.Change); err != nil {
		return response.ServerError(c, "Failed to update cart")
	}

	return c.JSON(fiber.Map{"message": "Cart updated"})
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid item ID")
	}

	if err := h.cartService.Remove(c.Context(), middleware.UserID(c), uint(itemID)); err != nil {
		return response.ServerError(c, "Failed to remove item")
	}

	return c.JSON(fiber.Map{"message": "Item removed"})
}
