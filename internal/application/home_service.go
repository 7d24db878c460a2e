package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/realtora/realtor-api/internal/domain/entity"
	"github.com/realtora/realtor-api/internal/domain/repository"
	"github.com/realtora/realtor-api/pkg/helpers"
)

const homeDetailTTL = 5 * time.Minute

func homeDetailKey(id int64) string {
	return "home:detail:" + strconv.FormatInt(id, 10)
}

// HomeService owns the listing lifecycle and response composition.
// Mutating entrypoints run the ownership guard exactly once before any
// write.
type HomeService struct {
	Homes        repository.HomeRepository
	Guard        *OwnershipGuard
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESHomesIndex string
}

func NewHomeService(homes repository.HomeRepository, guard *OwnershipGuard, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esHomesIndex string) *HomeService {
	return &HomeService{
		Homes:        homes,
		Guard:        guard,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESHomesIndex: esHomesIndex,
	}
}

type RealtorInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// HomeResponse is the external listing shape. List views carry only
// the primary image; detail views add the full image list and the
// owning realtor's contact info.
type HomeResponse struct {
	ID                int64               `json:"id"`
	Address           string              `json:"address"`
	City              string              `json:"city"`
	Price             int64               `json:"price"`
	PropertyType      entity.PropertyType `json:"property_type"`
	NumberOfBedrooms  int                 `json:"number_of_bedrooms"`
	NumberOfBathrooms int                 `json:"number_of_bathrooms"`
	LandSize          int                 `json:"land_size"`
	RealtorID         int64               `json:"realtor_id"`
	Image             string              `json:"image"`
	Images            []string            `json:"images,omitempty"`
	Realtor           *RealtorInfo        `json:"realtor,omitempty"`
}

func baseResponse(h *entity.Home) HomeResponse {
	return HomeResponse{
		ID:                h.ID,
		Address:           h.Address,
		City:              h.City,
		Price:             h.Price,
		PropertyType:      h.PropertyType,
		NumberOfBedrooms:  h.NumberOfBedrooms,
		NumberOfBathrooms: h.NumberOfBathrooms,
		LandSize:          h.LandSize,
		RealtorID:         h.RealtorID,
	}
}

// composeSummary shapes a list-view row. The primary image is the
// home's first image in store order; a home with none is a data
// integrity violation and fails loudly.
func composeSummary(rec repository.HomeWithImages) (HomeResponse, error) {
	if len(rec.Images) == 0 {
		return HomeResponse{}, ErrHomeMissingImage
	}
	resp := baseResponse(&rec.Home)
	resp.Image = rec.Images[0].URL
	return resp, nil
}

func composeDetail(d *repository.HomeDetail) (HomeResponse, error) {
	if len(d.Images) == 0 {
		return HomeResponse{}, ErrHomeMissingImage
	}
	resp := baseResponse(&d.Home)
	resp.Image = d.Images[0].URL
	resp.Images = make([]string, 0, len(d.Images))
	for _, img := range d.Images {
		resp.Images = append(resp.Images, img.URL)
	}
	resp.Realtor = &RealtorInfo{Name: d.Realtor.Name, Email: d.Realtor.Email, Phone: d.Realtor.Phone}
	return resp, nil
}

// ListHomes runs a filtered listing search. A search with zero matches
// reports ErrHomeNotFound rather than an empty collection; clients
// depend on that.
func (s *HomeService) ListHomes(ctx context.Context, filter repository.HomeFilter) ([]HomeResponse, error) {
	recs, err := s.Homes.FindMany(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrHomeNotFound
	}

	out := make([]HomeResponse, 0, len(recs))
	for _, rec := range recs {
		resp, err := composeSummary(rec)
		if err != nil {
			if s.Logger != nil {
				s.Logger.WithField("home_id", rec.Home.ID).Error("listing has no images")
			}
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *HomeService) GetHomeByID(ctx context.Context, id int64) (*HomeResponse, error) {
	if s.Redis != nil {
		var cached HomeResponse
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, homeDetailKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	d, err := s.Homes.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrHomeNotFound
	}
	if err != nil {
		return nil, err
	}
	resp, err := composeDetail(d)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithField("home_id", id).Error("listing has no images")
		}
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, homeDetailKey(id), resp, homeDetailTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("home detail cache write failed")
		}
	}
	return &resp, nil
}

type CreateHomeInput struct {
	Address           string
	City              string
	Price             int64
	PropertyType      entity.PropertyType
	NumberOfBedrooms  int
	NumberOfBathrooms int
	LandSize          int
	ImageURLs         []string
}

// CreateHome persists a listing owned by realtorID. The realtor
// identity always comes from the authenticated caller, never the
// payload. At least one image is required so the primary-image
// invariant holds from the first read.
func (s *HomeService) CreateHome(ctx context.Context, realtorID int64, in CreateHomeInput) (*HomeResponse, error) {
	if len(in.ImageURLs) == 0 {
		return nil, ErrHomeMissingImage
	}

	h := &entity.Home{
		Address:           in.Address,
		City:              in.City,
		Price:             in.Price,
		PropertyType:      in.PropertyType,
		NumberOfBedrooms:  in.NumberOfBedrooms,
		NumberOfBathrooms: in.NumberOfBathrooms,
		LandSize:          in.LandSize,
		RealtorID:         realtorID,
	}
	if err := s.Homes.Create(ctx, h, in.ImageURLs); err != nil {
		return nil, err
	}

	s.indexHome(ctx, h)

	resp := baseResponse(h)
	resp.Image = in.ImageURLs[0]
	resp.Images = in.ImageURLs
	return &resp, nil
}

// UpdateHomeInput carries a partial update; nil fields stay untouched.
// A non-nil ImageURLs replaces the photo set by URL and must not be
// empty.
type UpdateHomeInput struct {
	Address           *string
	City              *string
	Price             *int64
	PropertyType      *entity.PropertyType
	NumberOfBedrooms  *int
	NumberOfBathrooms *int
	LandSize          *int
	ImageURLs         []string
}

func (s *HomeService) UpdateHomeByID(ctx context.Context, callerID, id int64, in UpdateHomeInput) (*HomeResponse, error) {
	if err := s.Guard.Authorize(ctx, callerID, id); err != nil {
		return nil, err
	}
	if in.ImageURLs != nil && len(in.ImageURLs) == 0 {
		return nil, ErrHomeMissingImage
	}

	patch := repository.HomeUpdate{
		Address:           in.Address,
		City:              in.City,
		Price:             in.Price,
		PropertyType:      in.PropertyType,
		NumberOfBedrooms:  in.NumberOfBedrooms,
		NumberOfBathrooms: in.NumberOfBathrooms,
		LandSize:          in.LandSize,
		ImageURLs:         in.ImageURLs,
	}
	if err := s.Homes.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHomeNotFound
		}
		return nil, err
	}

	s.invalidateDetail(ctx, id)

	d, err := s.Homes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.indexHome(ctx, &d.Home)
	resp, err := composeDetail(d)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *HomeService) DeleteHomeByID(ctx context.Context, callerID, id int64) error {
	if err := s.Guard.Authorize(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.Homes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHomeNotFound
		}
		return err
	}

	s.invalidateDetail(ctx, id)
	s.removeFromIndex(ctx, id)
	return nil
}

func (s *HomeService) invalidateDetail(ctx context.Context, id int64) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, homeDetailKey(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("home_id", id).Warn("home detail cache invalidation failed")
	}
}

func (s *HomeService) indexHome(ctx context.Context, h *entity.Home) {
	if s.ES == nil || s.ESHomesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":            h.ID,
		"address":       h.Address,
		"city":          h.City,
		"price":         h.Price,
		"property_type": h.PropertyType,
		"realtor_id":    h.RealtorID,
		"updated_at":    h.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESHomesIndex,
		DocumentID: strconv.FormatInt(h.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("home_id", h.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("home_id", h.ID).Warn("es index response error")
	}
}

func (s *HomeService) removeFromIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESHomesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESHomesIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("home_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchHomes performs a multi_match full-text search over indexed
// listings.
func (s *HomeService) SearchHomes(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESHomesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"address^2", "city"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESHomesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
