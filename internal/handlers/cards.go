package handlers

import (
	"errors"

	"smartshop/internal/middleware"
	"smartshop/internal/models"
	"smartshop/internal/services/cards"
	"smartshop/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CardHandler struct {
	cardService cards.Service
}

func NewCardHandler(cardService cards.Service) *CardHandler {
	return &CardHandler{cardService: cardService}
}

func (h *CardHandler) GetCards(c *fiber.Ctx) error {
	list, err := h.cardService.ListCards(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.ServerError(c, "Failed to fetch cards")
	}

	out := make([]fiber.Map, len(list))
	for i, card := range list {
		out[i] = fiber.Map{
			"id":                card.ID,
			"card_number":       card.MaskedNumber(),
			"card_number_last4": card.LastFour,
			"card_holder_name":  card.CardHolderName,
			"expiry_date":       card.ExpiryDate,
			"card_type":         card.CardType,
			"is_default":        card.IsDefault,
			"created_at":        card.CreatedAt,
		}
	}
	return c.JSON(out)
}

func (h *CardHandler) AddCard(c *fiber.Ctx) error {
	var input models.CreateCardInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if _, err := h.cardService.AddCard(c.Context(), middleware.UserID(c), input); err != nil {
		if errors.Is(err, cards.ErrInvalidCardNumber) {
			return response.BadRequest(c, "Invalid card number")
		}
		return response.ServerError(c, "Failed to add card")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Card added successfully",
	})
}

func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid card ID")
	}

	if err := h.cardService.DeleteCard(c.Context(), middleware.UserID(c), uint(cardID)); err != nil {
		return response.ServerError(c, "Failed to delete card")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Card deleted",
	})
}
