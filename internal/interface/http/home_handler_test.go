package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtora/realtor-api/internal/application"
	"github.com/realtora/realtor-api/internal/domain/entity"
	"github.com/realtora/realtor-api/internal/domain/repository"
)

type stubHomeRepo struct {
	lastFilter    *repository.HomeFilter
	findManyCalls int
	findManyOut   []repository.HomeWithImages
}

func (s *stubHomeRepo) FindMany(_ context.Context, filter repository.HomeFilter) ([]repository.HomeWithImages, error) {
	s.findManyCalls++
	s.lastFilter = &filter
	return s.findManyOut, nil
}

func (s *stubHomeRepo) FindByID(_ context.Context, _ int64) (*repository.HomeDetail, error) {
	return nil, repository.ErrNotFound
}

func (s *stubHomeRepo) OwnerID(_ context.Context, _ int64) (int64, error) {
	return 0, repository.ErrNotFound
}

func (s *stubHomeRepo) Create(_ context.Context, _ *entity.Home, _ []string) error { return nil }

func (s *stubHomeRepo) Update(_ context.Context, _ int64, _ repository.HomeUpdate) error {
	return nil
}

func (s *stubHomeRepo) Delete(_ context.Context, _ int64) error { return nil }

func newTestRouter(repo *stubHomeRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := application.NewHomeService(repo, application.NewOwnershipGuard(repo), nil, nil, nil, "")
	h := NewHomeHandler(svc, nil, nil, "", nil)

	r := gin.New()
	r.GET("/api/homes", h.GetHomes)
	r.GET("/api/homes/:id", h.GetHomeByID)
	return r
}

func listing(id int64) repository.HomeWithImages {
	return repository.HomeWithImages{
		Home: entity.Home{
			ID:                id,
			Address:           "12 Oak Lane",
			City:              "Toronto",
			Price:             500000,
			PropertyType:      entity.PropertyResidential,
			NumberOfBedrooms:  3,
			NumberOfBathrooms: 2,
			LandSize:          4000,
			RealtorID:         9,
		},
		Images: []entity.Image{{ID: 1, URL: "https://img.example/a.jpg", HomeID: id}},
	}
}

func TestGetHomesBuildsFilterFromQuery(t *testing.T) {
	repo := &stubHomeRepo{findManyOut: []repository.HomeWithImages{listing(1)}}
	r := newTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/homes?city=Toronto&minPrice=100000&maxPrice=900000&propertyType=RESIDENTIAL", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, "Toronto", repo.lastFilter.City)
	require.NotNil(t, repo.lastFilter.MinPrice)
	assert.Equal(t, int64(100000), *repo.lastFilter.MinPrice)
	require.NotNil(t, repo.lastFilter.MaxPrice)
	assert.Equal(t, int64(900000), *repo.lastFilter.MaxPrice)
	require.NotNil(t, repo.lastFilter.PropertyType)
	assert.Equal(t, entity.PropertyResidential, *repo.lastFilter.PropertyType)
}

func TestGetHomesOmittedParamsDoNotConstrain(t *testing.T) {
	repo := &stubHomeRepo{findManyOut: []repository.HomeWithImages{listing(1)}}
	r := newTestRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/homes", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.lastFilter)
	assert.Empty(t, repo.lastFilter.City)
	assert.Nil(t, repo.lastFilter.MinPrice)
	assert.Nil(t, repo.lastFilter.MaxPrice)
	assert.Nil(t, repo.lastFilter.PropertyType)
}

func TestGetHomesMalformedPriceRejectedBeforeStore(t *testing.T) {
	repo := &stubHomeRepo{}
	r := newTestRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/homes?minPrice=cheap", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, repo.findManyCalls)
}

func TestGetHomesUnknownPropertyTypeRejected(t *testing.T) {
	repo := &stubHomeRepo{}
	r := newTestRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/homes?propertyType=CASTLE", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, repo.findManyCalls)
}

func TestGetHomesNoMatchesIs404(t *testing.T) {
	repo := &stubHomeRepo{}
	r := newTestRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/homes?city=Nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, repo.findManyCalls)
}

func TestGetHomeByIDBadPathParam(t *testing.T) {
	repo := &stubHomeRepo{}
	r := newTestRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/homes/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHomeByIDMissing(t *testing.T) {
	repo := &stubHomeRepo{}
	r := newTestRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/homes/123", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
