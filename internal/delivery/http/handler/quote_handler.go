package handler

import (
	"net/http"

	"cargolinked/internal/usecase/quote"
	"cargolinked/pkg/utils"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	service *quote.Service
}

func NewQuoteHandler(service *quote.Service) *QuoteHandler {
	return &QuoteHandler{service: service}
}

func (h *QuoteHandler) RegisterAuthenticatedRoutes(router *gin.RouterGroup) {
	// Visibility is narrowed in the service: owners see every quote,
	// agents only their own.
	router.GET("/requests/:id/quotes", h.ListForRequest)
}

func (h *QuoteHandler) RegisterAgentRoutes(router *gin.RouterGroup) {
	router.POST("/requests/:id/quotes", h.SubmitQuote)

	quotes := router.Group("/quotes")
	{
		quotes.GET("/mine", h.ListOwn)
		quotes.DELETE("/:id", h.WithdrawQuote)
	}
}

func (h *QuoteHandler) RegisterShipperRoutes(router *gin.RouterGroup) {
	quotes := router.Group("/quotes")
	{
		quotes.POST("/:id/accept", h.AcceptQuote)
		quotes.POST("/:id/reject", h.RejectQuote)
	}
}

func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	requestID, ok := pathID(c, "request")
	if !ok {
		return
	}
	agentID, ok := actorID(c)
	if !ok {
		return
	}

	var req quote.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), requestID, agentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Quote submitted successfully", result)
}

func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	quoteID, ok := pathID(c, "quote")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.service.Accept(c.Request.Context(), quoteID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quote accepted successfully", result)
}

func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	quoteID, ok := pathID(c, "quote")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.service.Reject(c.Request.Context(), quoteID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quote rejected successfully", result)
}

func (h *QuoteHandler) WithdrawQuote(c *gin.Context) {
	quoteID, ok := pathID(c, "quote")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), quoteID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quote withdrawn successfully", nil)
}

func (h *QuoteHandler) ListForRequest(c *gin.Context) {
	requestID, ok := pathID(c, "request")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.service.ListForRequest(c.Request.Context(), requestID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quotes retrieved successfully", result)
}

func (h *QuoteHandler) ListOwn(c *gin.Context) {
	agentID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.service.ListOwn(c.Request.Context(), agentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quotes retrieved successfully", result)
}
