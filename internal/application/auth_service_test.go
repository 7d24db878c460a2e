package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtora/realtor-api/internal/domain/entity"
	"github.com/realtora/realtor-api/internal/domain/repository"
	"github.com/realtora/realtor-api/pkg/helpers"
)

// memUserRepo stores users by email for the signup/signin tests.
type memUserRepo struct {
	users  map[string]*entity.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.users[u.Email] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func newTestAuthService(users repository.UserRepository) *AuthService {
	jwt := helpers.NewJWTManager("test-access-secret", "test-refresh-secret", time.Hour, 24*time.Hour)
	return NewAuthService(users, jwt, nil, nil, "test-product-secret")
}

func TestSignupDefaultsToBuyer(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())

	u, pair, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Sam Ortiz",
		Email:    "sam@example.com",
		Phone:    "+15550100002",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.UserBuyer, u.UserType)
	assert.NotEqual(t, "password123", u.Password)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())

	in := SignupInput{Name: "Sam", Email: "sam@example.com", Phone: "+15550100002", Password: "password123"}
	_, _, err := svc.Signup(context.Background(), in)
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupRealtorRequiresProductKey(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())

	in := SignupInput{
		Name:     "Dana Reyes",
		Email:    "dana@example.com",
		Phone:    "+15550100001",
		Password: "password123",
		UserType: entity.UserRealtor,
	}

	_, _, err := svc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidProductKey)

	in.ProductKey = "not-a-real-key"
	_, _, err = svc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidProductKey)

	key, err := svc.GenerateProductKey("dana@example.com", entity.UserRealtor)
	require.NoError(t, err)
	in.ProductKey = key
	u, _, err := svc.Signup(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRealtor, u.UserType)
}

func TestProductKeyBoundToEmailAndRole(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())

	key, err := svc.GenerateProductKey("dana@example.com", entity.UserRealtor)
	require.NoError(t, err)

	// same key presented for a different email
	_, _, err = svc.Signup(context.Background(), SignupInput{
		Name: "Eve", Email: "eve@example.com", Phone: "+15550100003",
		Password: "password123", UserType: entity.UserRealtor, ProductKey: key,
	})
	assert.ErrorIs(t, err, ErrInvalidProductKey)

	// same key presented for a higher role
	_, _, err = svc.Signup(context.Background(), SignupInput{
		Name: "Dana", Email: "dana@example.com", Phone: "+15550100001",
		Password: "password123", UserType: entity.UserAdmin, ProductKey: key,
	})
	assert.ErrorIs(t, err, ErrInvalidProductKey)
}

func TestSigninChecksCredentials(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo)

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Name: "Sam", Email: "sam@example.com", Phone: "+15550100002", Password: "password123",
	})
	require.NoError(t, err)

	u, pair, err := svc.Signin(context.Background(), "sam@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", u.Email)
	assert.NotEmpty(t, pair.AccessToken)

	_, _, err = svc.Signin(context.Background(), "sam@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Signin(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())

	u, pair, err := svc.Signup(context.Background(), SignupInput{
		Name: "Sam", Email: "sam@example.com", Phone: "+15550100002", Password: "password123",
	})
	require.NoError(t, err)

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)

	claims, err := svc.JWT.ParseAccessToken(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, string(entity.UserBuyer), claims.UserType)

	_, err = svc.Refresh(context.Background(), "garbage-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
