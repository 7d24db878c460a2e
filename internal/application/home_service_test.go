package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtora/realtor-api/internal/domain/entity"
	"github.com/realtora/realtor-api/internal/domain/repository"
)

// fakeHomeRepo is an in-memory HomeRepository shared by the service
// tests in this package.
type fakeHomeRepo struct {
	owners map[int64]int64

	findManyOut []repository.HomeWithImages
	findManyErr error
	lastFilter  repository.HomeFilter

	detail *repository.HomeDetail

	created     *entity.Home
	createdURLs []string

	updatedID    int64
	updatedPatch *repository.HomeUpdate
	updateCalls  int

	deletedIDs []int64
}

func (f *fakeHomeRepo) FindMany(_ context.Context, filter repository.HomeFilter) ([]repository.HomeWithImages, error) {
	f.lastFilter = filter
	return f.findManyOut, f.findManyErr
}

func (f *fakeHomeRepo) FindByID(_ context.Context, id int64) (*repository.HomeDetail, error) {
	if f.detail == nil || f.detail.Home.ID != id {
		return nil, repository.ErrNotFound
	}
	return f.detail, nil
}

func (f *fakeHomeRepo) OwnerID(_ context.Context, homeID int64) (int64, error) {
	owner, ok := f.owners[homeID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return owner, nil
}

func (f *fakeHomeRepo) Create(_ context.Context, h *entity.Home, imageURLs []string) error {
	h.ID = 42
	f.created = h
	f.createdURLs = imageURLs
	return nil
}

func (f *fakeHomeRepo) Update(_ context.Context, id int64, patch repository.HomeUpdate) error {
	f.updateCalls++
	f.updatedID = id
	f.updatedPatch = &patch
	if _, ok := f.owners[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeHomeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.owners[id]; !ok {
		return repository.ErrNotFound
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

var _ repository.HomeRepository = (*fakeHomeRepo)(nil)

func newTestHomeService(repo *fakeHomeRepo) *HomeService {
	return NewHomeService(repo, NewOwnershipGuard(repo), nil, nil, nil, "")
}

func sampleHome(id, realtorID int64) entity.Home {
	return entity.Home{
		ID:                id,
		Address:           "12 Oak Lane",
		City:              "Toronto",
		Price:             500000,
		PropertyType:      entity.PropertyResidential,
		NumberOfBedrooms:  3,
		NumberOfBathrooms: 2,
		LandSize:          4000,
		RealtorID:         realtorID,
	}
}

func TestListHomesEmptyResultIsNotFound(t *testing.T) {
	repo := &fakeHomeRepo{}
	svc := newTestHomeService(repo)

	homes, err := svc.ListHomes(context.Background(), repository.HomeFilter{City: "Nowhere"})
	assert.ErrorIs(t, err, ErrHomeNotFound)
	assert.Nil(t, homes)
}

func TestListHomesPrimaryImageIsFirstInStoreOrder(t *testing.T) {
	repo := &fakeHomeRepo{
		findManyOut: []repository.HomeWithImages{
			{
				Home: sampleHome(1, 9),
				Images: []entity.Image{
					{ID: 10, URL: "https://img.example/first.jpg", HomeID: 1},
				},
			},
		},
	}
	svc := newTestHomeService(repo)

	homes, err := svc.ListHomes(context.Background(), repository.HomeFilter{})
	require.NoError(t, err)
	require.Len(t, homes, 1)
	assert.Equal(t, "https://img.example/first.jpg", homes[0].Image)
	// list views carry only the primary image
	assert.Empty(t, homes[0].Images)
	assert.Nil(t, homes[0].Realtor)
}

func TestListHomesFailsLoudlyOnImagelessHome(t *testing.T) {
	repo := &fakeHomeRepo{
		findManyOut: []repository.HomeWithImages{
			{Home: sampleHome(1, 9)}, // no images: integrity violation
		},
	}
	svc := newTestHomeService(repo)

	homes, err := svc.ListHomes(context.Background(), repository.HomeFilter{})
	assert.ErrorIs(t, err, ErrHomeMissingImage)
	assert.Nil(t, homes)
}

func TestGetHomeByIDComposesDetail(t *testing.T) {
	repo := &fakeHomeRepo{
		detail: &repository.HomeDetail{
			Home: sampleHome(7, 9),
			Images: []entity.Image{
				{ID: 1, URL: "https://img.example/a.jpg", HomeID: 7},
				{ID: 2, URL: "https://img.example/b.jpg", HomeID: 7},
			},
			Realtor: entity.Contact{Name: "Dana", Email: "dana@example.com", Phone: "+15550100001"},
		},
	}
	svc := newTestHomeService(repo)

	resp, err := svc.GetHomeByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/a.jpg", resp.Image)
	assert.Equal(t, []string{"https://img.example/a.jpg", "https://img.example/b.jpg"}, resp.Images)
	require.NotNil(t, resp.Realtor)
	assert.Equal(t, "dana@example.com", resp.Realtor.Email)
}

func TestGetHomeByIDNotFound(t *testing.T) {
	svc := newTestHomeService(&fakeHomeRepo{})

	_, err := svc.GetHomeByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrHomeNotFound)
}

func TestCreateHomeAttributesCallerAsOwner(t *testing.T) {
	repo := &fakeHomeRepo{}
	svc := newTestHomeService(repo)

	urls := []string{"https://img.example/a.jpg", "https://img.example/b.jpg"}
	resp, err := svc.CreateHome(context.Background(), 9, CreateHomeInput{
		Address:           "12 Oak Lane",
		City:              "Toronto",
		Price:             500000,
		PropertyType:      entity.PropertyCondo,
		NumberOfBedrooms:  2,
		NumberOfBathrooms: 1,
		LandSize:          900,
		ImageURLs:         urls,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(9), repo.created.RealtorID)
	assert.Equal(t, urls, repo.createdURLs)
	assert.Equal(t, urls[0], resp.Image)
	assert.Equal(t, int64(42), resp.ID)
}

func TestCreateHomeRequiresAnImage(t *testing.T) {
	repo := &fakeHomeRepo{}
	svc := newTestHomeService(repo)

	_, err := svc.CreateHome(context.Background(), 9, CreateHomeInput{Address: "x", City: "y", Price: 1})
	assert.ErrorIs(t, err, ErrHomeMissingImage)
	assert.Nil(t, repo.created)
}

func TestUpdateHomeByNonOwnerRejectedBeforeWrite(t *testing.T) {
	repo := &fakeHomeRepo{owners: map[int64]int64{5: 9}}
	svc := newTestHomeService(repo)

	addr := "new address"
	_, err := svc.UpdateHomeByID(context.Background(), 777, 5, UpdateHomeInput{Address: &addr})
	assert.ErrorIs(t, err, ErrNotHomeOwner)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateMissingHomeIsNotFoundNotForbidden(t *testing.T) {
	repo := &fakeHomeRepo{owners: map[int64]int64{}}
	svc := newTestHomeService(repo)

	addr := "new address"
	_, err := svc.UpdateHomeByID(context.Background(), 777, 5, UpdateHomeInput{Address: &addr})
	assert.ErrorIs(t, err, ErrHomeNotFound)
	assert.NotErrorIs(t, err, ErrNotHomeOwner)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateHomeRejectsEmptyImageSet(t *testing.T) {
	repo := &fakeHomeRepo{owners: map[int64]int64{5: 9}}
	svc := newTestHomeService(repo)

	_, err := svc.UpdateHomeByID(context.Background(), 9, 5, UpdateHomeInput{ImageURLs: []string{}})
	assert.ErrorIs(t, err, ErrHomeMissingImage)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateHomeByOwnerAppliesPatch(t *testing.T) {
	repo := &fakeHomeRepo{
		owners: map[int64]int64{5: 9},
		detail: &repository.HomeDetail{
			Home:    sampleHome(5, 9),
			Images:  []entity.Image{{ID: 1, URL: "https://img.example/a.jpg", HomeID: 5}},
			Realtor: entity.Contact{Name: "Dana", Email: "dana@example.com"},
		},
	}
	svc := newTestHomeService(repo)

	price := int64(650000)
	resp, err := svc.UpdateHomeByID(context.Background(), 9, 5, UpdateHomeInput{Price: &price})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedPatch)
	assert.Equal(t, int64(5), repo.updatedID)
	assert.Equal(t, price, *repo.updatedPatch.Price)
	assert.Nil(t, repo.updatedPatch.Address)
	assert.Equal(t, "https://img.example/a.jpg", resp.Image)
}

func TestDeleteHomeByOwner(t *testing.T) {
	repo := &fakeHomeRepo{owners: map[int64]int64{5: 9}}
	svc := newTestHomeService(repo)

	require.NoError(t, svc.DeleteHomeByID(context.Background(), 9, 5))
	assert.Equal(t, []int64{5}, repo.deletedIDs)
}

func TestDeleteHomeByNonOwner(t *testing.T) {
	repo := &fakeHomeRepo{owners: map[int64]int64{5: 9}}
	svc := newTestHomeService(repo)

	err := svc.DeleteHomeByID(context.Background(), 777, 5)
	assert.ErrorIs(t, err, ErrNotHomeOwner)
	assert.Empty(t, repo.deletedIDs)
}
