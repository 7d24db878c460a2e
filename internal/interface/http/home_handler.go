package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/realtora/realtor-api/internal/application"
	"github.com/realtora/realtor-api/internal/domain/entity"
	"github.com/realtora/realtor-api/internal/domain/repository"
	"github.com/realtora/realtor-api/internal/interface/middleware"
	"github.com/realtora/realtor-api/pkg/helpers"
	"github.com/realtora/realtor-api/pkg/response"
	"github.com/realtora/realtor-api/pkg/validation"
)

// HomeHandler exposes the listing endpoints: browse, detail, search,
// realtor CRUD, photo upload, and buyer inquiries.
type HomeHandler struct {
	Homes     *application.HomeService
	Inquiries *application.InquiryService
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewHomeHandler(homes *application.HomeService, inquiries *application.InquiryService, gcs *storage.Client, bucket string, logger *logrus.Logger) *HomeHandler {
	return &HomeHandler{Homes: homes, Inquiries: inquiries, GCS: gcs, GCSBucket: bucket, Logger: logger}
}

// writeServiceError maps application sentinels onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrHomeNotFound):
		response.Error[any](c, http.StatusNotFound, "home not found", nil)
	case errors.Is(err, application.ErrNotHomeOwner):
		response.Error[any](c, http.StatusForbidden, "not the listing owner", nil)
	case errors.Is(err, application.ErrHomeMissingImage):
		response.Error[any](c, http.StatusUnprocessableEntity, "listing must have at least one image", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}

// GetHomes GET /api/homes?city=&minPrice=&maxPrice=&propertyType=
// Filters are combined with AND; omitted parameters do not constrain.
// An empty result is a 404, matching the detail endpoint.
func (h *HomeHandler) GetHomes(c *gin.Context) {
	var filter repository.HomeFilter
	filter.City = c.Query("city")

	if v := c.Query("minPrice"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "minPrice must be an integer", nil)
			return
		}
		filter.MinPrice = &p
	}
	if v := c.Query("maxPrice"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "maxPrice must be an integer", nil)
			return
		}
		filter.MaxPrice = &p
	}
	if v := c.Query("propertyType"); v != "" {
		pt := entity.PropertyType(v)
		if !pt.Valid() {
			response.Error[any](c, http.StatusBadRequest, "propertyType must be RESIDENTIAL or CONDO", nil)
			return
		}
		filter.PropertyType = &pt
	}

	homes, err := h.Homes.ListHomes(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, homes, "homes", nil)
}

// GetHomeByID GET /api/homes/:id
func (h *HomeHandler) GetHomeByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	home, err := h.Homes.GetHomeByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, home, "home", nil)
}

// SearchHomes GET /api/homes/search?q=&size=
func (h *HomeHandler) SearchHomes(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size := 10
	if v := c.Query("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			size = n
		}
	}
	hits, err := h.Homes.SearchHomes(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

type createHomeRequest struct {
	Address           string   `json:"address" binding:"required"`
	City              string   `json:"city" binding:"required"`
	Price             int64    `json:"price" binding:"required,gt=0"`
	PropertyType      string   `json:"property_type" binding:"required,oneof=RESIDENTIAL CONDO"`
	NumberOfBedrooms  int      `json:"number_of_bedrooms" binding:"required,gt=0"`
	NumberOfBathrooms int      `json:"number_of_bathrooms" binding:"required,gt=0"`
	LandSize          int      `json:"land_size" binding:"required,gt=0"`
	Images            []string `json:"images" binding:"required,min=1,dive,url"`
}

// CreateHome POST /api/homes (realtor only)
// The listing is always attributed to the authenticated realtor.
func (h *HomeHandler) CreateHome(c *gin.Context) {
	var req createHomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	realtorID := c.GetInt64(middleware.CtxUserIDKey)

	home, err := h.Homes.CreateHome(c.Request.Context(), realtorID, application.CreateHomeInput{
		Address:           req.Address,
		City:              req.City,
		Price:             req.Price,
		PropertyType:      entity.PropertyType(req.PropertyType),
		NumberOfBedrooms:  req.NumberOfBedrooms,
		NumberOfBathrooms: req.NumberOfBathrooms,
		LandSize:          req.LandSize,
		ImageURLs:         req.Images,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, home, "home created", nil)
}

type updateHomeRequest struct {
	Address           *string  `json:"address"`
	City              *string  `json:"city"`
	Price             *int64   `json:"price" binding:"omitempty,gt=0"`
	PropertyType      *string  `json:"property_type" binding:"omitempty,oneof=RESIDENTIAL CONDO"`
	NumberOfBedrooms  *int     `json:"number_of_bedrooms" binding:"omitempty,gt=0"`
	NumberOfBathrooms *int     `json:"number_of_bathrooms" binding:"omitempty,gt=0"`
	LandSize          *int     `json:"land_size" binding:"omitempty,gt=0"`
	Images            []string `json:"images" binding:"omitempty,dive,url"`
}

// UpdateHome PUT /api/homes/:id (listing owner only)
// Omitted fields keep their values. Sending images replaces the photo
// set; the realtor can never be reassigned here.
func (h *HomeHandler) UpdateHome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateHomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	callerID := c.GetInt64(middleware.CtxUserIDKey)

	in := application.UpdateHomeInput{
		Address:           req.Address,
		City:              req.City,
		Price:             req.Price,
		NumberOfBedrooms:  req.NumberOfBedrooms,
		NumberOfBathrooms: req.NumberOfBathrooms,
		LandSize:          req.LandSize,
		ImageURLs:         req.Images,
	}
	if req.PropertyType != nil {
		pt := entity.PropertyType(*req.PropertyType)
		in.PropertyType = &pt
	}

	home, err := h.Homes.UpdateHomeByID(c.Request.Context(), callerID, id, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, home, "home updated", nil)
}

// DeleteHome DELETE /api/homes/:id (listing owner only)
func (h *HomeHandler) DeleteHome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	callerID := c.GetInt64(middleware.CtxUserIDKey)
	if err := h.Homes.DeleteHomeByID(c.Request.Context(), callerID, id); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "home deleted", nil)
}

// UploadPhoto POST /api/homes/photos (realtor only, multipart "file")
// Stores the photo in GCS and returns its public URL for use in a
// subsequent create or update.
func (h *HomeHandler) UploadPhoto(c *gin.Context) {
	if h.GCS == nil || h.GCSBucket == "" {
		response.Error[any](c, http.StatusServiceUnavailable, "photo storage not configured", nil)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	defer f.Close()

	realtorID := c.GetInt64(middleware.CtxUserIDKey)
	object := "listings/" + strconv.FormatInt(realtorID, 10) + "/" + uuid.New().String() + filepath.Ext(fh.Filename)
	contentType := fh.Header.Get("Content-Type")

	url, err := helpers.UploadObject(c.Request.Context(), h.GCS, h.GCSBucket, object, contentType, f)
	if err != nil {
		h.Logger.WithError(err).Error("photo upload failed")
		response.Error[any](c, http.StatusBadGateway, "upload failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url}, "photo uploaded", nil)
}

type inquireRequest struct {
	Message string `json:"message" binding:"required,min=1,max=2000"`
}

type inquiryResponse struct {
	ID        int64     `json:"id"`
	HomeID    int64     `json:"home_id"`
	BuyerID   int64     `json:"buyer_id"`
	RealtorID int64     `json:"realtor_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type buyerContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type inquiryWithBuyer struct {
	inquiryResponse
	Buyer buyerContact `json:"buyer"`
}

// Inquire POST /api/homes/:id/inquiries (buyer only)
// The receiving realtor is resolved from the listing at send time; any
// realtor identity supplied by the client is ignored.
func (h *HomeHandler) Inquire(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req inquireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	buyer := application.Caller{
		ID:   c.GetInt64(middleware.CtxUserIDKey),
		Name: c.GetString(middleware.CtxUserNameKey),
	}
	msg, err := h.Inquiries.Inquire(c.Request.Context(), buyer, id, req.Message)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, inquiryResponse{
		ID:        msg.ID,
		HomeID:    msg.HomeID,
		BuyerID:   msg.BuyerID,
		RealtorID: msg.RealtorID,
		Message:   msg.Text,
		CreatedAt: msg.CreatedAt,
	}, "inquiry sent", nil)
}

// ListInquiries GET /api/homes/:id/inquiries (listing owner only)
func (h *HomeHandler) ListInquiries(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	callerID := c.GetInt64(middleware.CtxUserIDKey)
	msgs, err := h.Inquiries.ListByHome(c.Request.Context(), callerID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]inquiryWithBuyer, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, inquiryWithBuyer{
			inquiryResponse: inquiryResponse{
				ID:        m.Message.ID,
				HomeID:    m.Message.HomeID,
				BuyerID:   m.Message.BuyerID,
				RealtorID: m.Message.RealtorID,
				Message:   m.Message.Text,
				CreatedAt: m.Message.CreatedAt,
			},
			Buyer: buyerContact{Name: m.Buyer.Name, Email: m.Buyer.Email, Phone: m.Buyer.Phone},
		})
	}
	response.Success(c, http.StatusOK, out, "inquiries", nil)
}
