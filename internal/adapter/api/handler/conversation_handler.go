package handler

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"
	"marketplace/pkg/errors"
	"marketplace/pkg/response"
	"marketplace/pkg/utils"
)

type ConversationHandler struct {
	sessions *usecase.SessionManager
	products repository.ProductRepository
}

func NewConversationHandler(sessions *usecase.SessionManager, products repository.ProductRepository) *ConversationHandler {
	return &ConversationHandler{
		sessions: sessions,
		products: products,
	}
}

type startConversationRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// StartConversation opens (or reuses) the caller's conversation about a product.
func (h *ConversationHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.products.GetByID(c.Request().Context(), req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	s := session(c, h.sessions)
	id, err := s.Conversations.StartConversation(c.Request().Context(), product)
	if err != nil {
		return response.Error(c, err)
	}

	conv, _ := s.Conversations.GetConversationByID(id)
	return response.Created(c, conv)
}

func (h *ConversationHandler) ListConversations(c echo.Context) error {
	s := session(c, h.sessions)
	s.Conversations.Reload(c.Request().Context())

	params := utils.GetPaginationParams(c)
	items, total := utils.Paginate(s.Conversations.Conversations(), params)
	return response.Paginated(c, items, total, params.Page, params.PageSize)
}

func (h *ConversationHandler) GetConversation(c echo.Context) error {
	s := session(c, h.sessions)
	s.Conversations.Reload(c.Request().Context())
	conv, ok := s.Conversations.GetConversationByID(c.Param("id"))
	if !ok {
		return response.Error(c, errors.NotFound("Conversation", nil))
	}
	return response.Success(c, conv)
}

// SendMessage appends a message to one of the caller's conversations.
func (h *ConversationHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	s := session(c, h.sessions)
	msg := s.Conversations.SendMessage(c.Request().Context(), c.Param("id"), req.Text)
	if msg == nil {
		if s.User == nil {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}
		return response.Error(c, errors.NotFound("Conversation", nil))
	}

	return response.Created(c, msg)
}
