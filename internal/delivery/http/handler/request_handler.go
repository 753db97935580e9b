package handler

import (
	"net/http"

	"cargolinked/internal/usecase/request"
	"cargolinked/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	service *request.Service
}

func NewRequestHandler(service *request.Service) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		// Public marketplace listing
		requests.GET("", h.ListActive)
		requests.GET("/:id", h.GetRequest)
	}
}

func (h *RequestHandler) RegisterShipperRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		requests.POST("", h.CreateRequest)
		requests.GET("/mine", h.ListOwn)
		requests.POST("/:id/publish", h.PublishRequest)
		requests.DELETE("/:id", h.DeleteRequest)
	}
}

func (h *RequestHandler) RegisterAuthenticatedRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		// Ownership and assignment are checked in the service
		requests.POST("/:id/cancel", h.CancelRequest)
		requests.POST("/:id/pickup", h.MarkInTransit)
		requests.POST("/:id/deliver", h.MarkDelivered)
	}
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	ownerID, ok := actorID(c)
	if !ok {
		return
	}

	var req request.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Freight request created successfully", result)
}

func (h *RequestHandler) PublishRequest(c *gin.Context) {
	requestID, ok := pathID(c, "request")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.service.Publish(c.Request.Context(), requestID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Freight request published successfully", result)
}

func (h *RequestHandler) CancelRequest(c *gin.Context) {
	requestID, ok := pathID(c, "request")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), requestID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Freight request cancelled successfully", result)
}

func (h *RequestHandler) MarkInTransit(c *gin.Context) {
	requestID, ok := pathID(c, "request")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.service.MarkInTransit(c.Request.Context(), requestID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pickup confirmed", result)
}

func (h *RequestHandler) MarkDelivered(c *gin.Context) {
	requestID, ok := pathID(c, "request")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.service.MarkDelivered(c.Request.Context(), requestID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Delivery confirmed", result)
}

func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	requestID, ok := pathID(c, "request")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), requestID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Freight request deleted successfully", nil)
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	requestID, ok := pathID(c, "request")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), requestID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Freight request retrieved successfully", result)
}

func (h *RequestHandler) ListActive(c *gin.Context) {
	var filter request.RequestFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.ListActive(c.Request.Context(), &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Freight requests retrieved successfully", result)
}

func (h *RequestHandler) ListOwn(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var filter request.RequestFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.ListOwn(c.Request.Context(), userID, &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Freight requests retrieved successfully", result)
}
