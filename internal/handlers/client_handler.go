package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"juaconnect_backend/internal/middleware"
	"juaconnect_backend/internal/models"
	"juaconnect_backend/internal/services"
	"juaconnect_backend/internal/services/dto"
)

// ClientHandler serves the client's requests, bookings and reviews.
type ClientHandler struct {
	*BaseHandler
	requestService services.RequestService
	reviewService  services.ReviewService
}

func NewClientHandler(
	base *BaseHandler,
	requestService services.RequestService,
	reviewService services.ReviewService,
) *ClientHandler {
	return &ClientHandler{
		BaseHandler:    base,
		requestService: requestService,
		reviewService:  reviewService,
	}
}

func (h *ClientHandler) RegisterRoutes(r *gin.RouterGroup) {
	client := r.Group("/client")
	client.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleClient))
	{
		client.POST("/requests", h.CreateRequest)
		client.GET("/requests", h.GetRequests)
		client.GET("/requests/:id", h.GetRequest)
		client.PUT("/requests/:id", h.CancelRequest)

		client.POST("/book-artisan", h.BookArtisan)
		client.GET("/bookings", h.GetBookings)
		client.POST("/reviews", h.CreateReview)
	}
}

func (h *ClientHandler) CreateRequest(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.requestService.CreateRequest(clientID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusCreated, request)
}

func (h *ClientHandler) GetRequests(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.GetClientRequests(clientID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, gin.H{"requests": requests, "total": len(requests)})
}

func (h *ClientHandler) GetRequest(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.GetRequest(clientID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, request)
}

// CancelRequest is the only client-driven transition, so PUT on the
// request resource maps straight to cancel.
func (h *ClientHandler) CancelRequest(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.CancelRequest(clientID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, request)
}

func (h *ClientHandler) BookArtisan(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BookArtisanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.requestService.BookArtisan(clientID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusCreated, request)
}

func (h *ClientHandler) GetBookings(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bookings, err := h.requestService.GetClientBookings(clientID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, gin.H{"bookings": bookings, "total": len(bookings)})
}

func (h *ClientHandler) CreateReview(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(clientID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusCreated, review)
}
