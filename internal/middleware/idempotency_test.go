package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/inkwell-blog/inkwell-backend/internal/domain"
)

// fakeCache implements cache.Service with an in-memory claim set
type fakeCache struct {
	claims   map[string]bool
	claimErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{claims: map[string]bool{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("miss")
}
func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (f *fakeCache) Delete(ctx context.Context, keys ...string) error      { return nil }
func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error)  { return false, nil }
func (f *fakeCache) GetFeedPage(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("miss")
}
func (f *fakeCache) SetFeedPage(ctx context.Context, key string, data interface{}) error { return nil }
func (f *fakeCache) InvalidateFeed(ctx context.Context) error                            { return nil }
func (f *fakeCache) IsAvailable() bool                                                   { return true }
func (f *fakeCache) Ping(ctx context.Context) error                                      { return nil }

func (f *fakeCache) ClaimIdempotencyKey(ctx context.Context, actorID, key string) (bool, error) {
	if f.claimErr != nil {
		return false, f.claimErr
	}
	k := actorID + ":" + key
	if f.claims[k] {
		return false, nil
	}
	f.claims[k] = true
	return true, nil
}

func doIdempotentPost(cache *fakeCache, actor *domain.Actor, key string) int {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/submit",
		func(c *gin.Context) {
			if actor != nil {
				c.Set(actorKey, actor)
			}
		},
		Idempotency(cache),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	if key != "" {
		req.Header.Set("X-Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestIdempotency_FirstClaimWins(t *testing.T) {
	cache := newFakeCache()
	actor := &domain.Actor{ID: "user1", Role: domain.RoleUser}

	assert.Equal(t, http.StatusCreated, doIdempotentPost(cache, actor, "abc"))
	assert.Equal(t, http.StatusConflict, doIdempotentPost(cache, actor, "abc"))
}

func TestIdempotency_KeysAreScopedPerActor(t *testing.T) {
	cache := newFakeCache()

	a := &domain.Actor{ID: "user1", Role: domain.RoleUser}
	b := &domain.Actor{ID: "user2", Role: domain.RoleUser}

	assert.Equal(t, http.StatusCreated, doIdempotentPost(cache, a, "abc"))
	// Same key, different actor: not a replay
	assert.Equal(t, http.StatusCreated, doIdempotentPost(cache, b, "abc"))
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	cache := newFakeCache()
	actor := &domain.Actor{ID: "user1", Role: domain.RoleUser}

	assert.Equal(t, http.StatusCreated, doIdempotentPost(cache, actor, ""))
	assert.Equal(t, http.StatusCreated, doIdempotentPost(cache, actor, ""))
}

func TestIdempotency_FailsOpenOnCacheError(t *testing.T) {
	cache := newFakeCache()
	cache.claimErr = errors.New("redis down")
	actor := &domain.Actor{ID: "user1", Role: domain.RoleUser}

	assert.Equal(t, http.StatusCreated, doIdempotentPost(cache, actor, "abc"))
}
