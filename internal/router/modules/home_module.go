package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realtora/realtor-api/internal/container"
	"github.com/realtora/realtor-api/internal/domain/entity"
	handlers "github.com/realtora/realtor-api/internal/interface/http"
	"github.com/realtora/realtor-api/internal/interface/middleware"
	"github.com/realtora/realtor-api/pkg/helpers"
)

// HomeModule wires the listing routes.
// Public: GET /api/homes, GET /api/homes/search, GET /api/homes/:id
// Realtor: POST/PUT/DELETE /api/homes..., POST /api/homes/photos
// Buyer: POST /api/homes/:id/inquiries
type HomeModule struct {
	Handler *handlers.HomeHandler
	JWT     *helpers.JWTManager
}

func NewHomeModule(h *handlers.HomeHandler, jwt *helpers.JWTManager) *HomeModule {
	return &HomeModule{Handler: h, JWT: jwt}
}

func (m *HomeModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/homes", browseLimiter, m.Handler.GetHomes)
	rg.GET("/homes/search", searchLimiter, m.Handler.SearchHomes)
	rg.GET("/homes/:id", browseLimiter, m.Handler.GetHomeByID)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))

	// Listing management is for realtors; admins can moderate
	realtor := auth.Group("/", middleware.RequireUserType(entity.UserRealtor, entity.UserAdmin))
	{
		realtor.POST("/homes", m.Handler.CreateHome)
		realtor.PUT("/homes/:id", m.Handler.UpdateHome)
		realtor.DELETE("/homes/:id", m.Handler.DeleteHome)
		realtor.POST("/homes/photos", m.Handler.UploadPhoto)
		realtor.GET("/homes/:id/inquiries", m.Handler.ListInquiries)
	}

	// Buyers ask questions about a listing
	buyer := auth.Group("/", middleware.RequireUserType(entity.UserBuyer, entity.UserAdmin))
	{
		buyer.POST("/homes/:id/inquiries", m.Handler.Inquire)
	}
}
