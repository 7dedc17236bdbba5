package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"juaconnect_backend/internal/middleware"
	"juaconnect_backend/internal/models"
	"juaconnect_backend/internal/services"
	"juaconnect_backend/internal/services/dto"
)

// ArtisanHandler serves the public artisan directory and the artisan's own
// work queue.
type ArtisanHandler struct {
	*BaseHandler
	userService    services.UserService
	requestService services.RequestService
	reviewService  services.ReviewService
}

func NewArtisanHandler(
	base *BaseHandler,
	userService services.UserService,
	requestService services.RequestService,
	reviewService services.ReviewService,
) *ArtisanHandler {
	return &ArtisanHandler{
		BaseHandler:    base,
		userService:    userService,
		requestService: requestService,
		reviewService:  reviewService,
	}
}

func (h *ArtisanHandler) RegisterRoutes(r *gin.RouterGroup) {
	artisan := r.Group("/artisan")
	{
		// Public directory
		artisan.GET("", h.ListArtisans)
		artisan.GET("/search", h.SearchArtisans)
		artisan.GET("/:id", h.GetArtisan)
		artisan.GET("/:id/reviews", h.GetArtisanReviews)

		// Artisan's own surface
		own := artisan.Group("")
		own.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleArtisan))
		{
			own.GET("/profile", h.GetOwnProfile)
			own.PUT("/profile", h.UpdateOwnProfile)
			own.GET("/available-requests", h.GetAvailableRequests)
			own.GET("/accepted-requests", h.GetAcceptedRequests)

			own.POST("/requests/:id/accept", h.AcceptRequest)
			own.POST("/requests/:id/reject", h.RejectRequest)
			own.POST("/requests/:id/start", h.StartWork)
			own.POST("/requests/:id/complete", h.CompleteWork)
		}
	}
}

// --- Directory ---

func (h *ArtisanHandler) ListArtisans(c *gin.Context) {
	artisans, err := h.userService.ListArtisans()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, gin.H{"artisans": artisans, "total": len(artisans)})
}

func (h *ArtisanHandler) SearchArtisans(c *gin.Context) {
	var query dto.ArtisanSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	artisans, err := h.userService.SearchArtisans(query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, gin.H{"artisans": artisans, "total": len(artisans)})
}

func (h *ArtisanHandler) GetArtisan(c *gin.Context) {
	artisan, err := h.userService.GetArtisan(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, artisan)
}

func (h *ArtisanHandler) GetArtisanReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetArtisanReviews(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, gin.H{"reviews": reviews, "total": len(reviews)})
}

// --- Own profile ---

func (h *ArtisanHandler) GetOwnProfile(c *gin.Context) {
	artisanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(artisanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, user)
}

func (h *ArtisanHandler) UpdateOwnProfile(c *gin.Context) {
	artisanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(artisanID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, user)
}

// --- Work queue ---

func (h *ArtisanHandler) GetAvailableRequests(c *gin.Context) {
	artisanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.GetAvailableRequests(artisanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, gin.H{"requests": requests, "total": len(requests)})
}

func (h *ArtisanHandler) GetAcceptedRequests(c *gin.Context) {
	artisanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.GetAcceptedRequests(artisanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, gin.H{"requests": requests, "total": len(requests)})
}

func (h *ArtisanHandler) AcceptRequest(c *gin.Context) {
	artisanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.AcceptRequest(artisanID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, request)
}

func (h *ArtisanHandler) RejectRequest(c *gin.Context) {
	artisanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.RejectRequest(artisanID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, request)
}

func (h *ArtisanHandler) StartWork(c *gin.Context) {
	artisanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// Body is optional; absent means the booking inherits the budget.
	var req dto.StartWorkRequest
	if c.Request.ContentLength > 0 {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	request, err := h.requestService.StartWork(artisanID, c.Param("id"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, request)
}

func (h *ArtisanHandler) CompleteWork(c *gin.Context) {
	artisanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.CompleteWork(artisanID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondData(c, http.StatusOK, request)
}
