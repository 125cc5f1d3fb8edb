package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/models"
)

type fakeActivityRecorder struct {
	mu      sync.Mutex
	touched []primitive.ObjectID
}

func (f *fakeActivityRecorder) TouchActivity(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeActivityRecorder) sawUser(id primitive.ObjectID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.touched {
		if t == id {
			return true
		}
	}
	return false
}

func TestActivityTracker_RecordsActivityOnAuthenticatedRequest(t *testing.T) {
	// GIVEN: A route group with JWT auth followed by the tracker
	// WHEN: A request with a valid token hits the group
	// THEN: The caller's last-seen timestamp is bumped with their id

	t.Setenv("JWT_SECRET", "test-secret")

	userID := primitive.NewObjectID()
	token, _, err := GenerateJWT(userID.Hex(), "rep@example.com", models.RoleSalesRep)
	require.NoError(t, err)

	recorder := &fakeActivityRecorder{}

	e := echo.New()
	g := e.Group("/api")
	g.Use(JWTMiddleware())
	g.Use(ActivityTracker(recorder))
	g.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Eventually(t, func() bool { return recorder.sawUser(userID) },
		time.Second, 10*time.Millisecond, "tracker should record the authenticated caller")
}

func TestActivityTracker_SkipsUnauthenticatedRequest(t *testing.T) {
	recorder := &fakeActivityRecorder{}

	e := echo.New()
	e.GET("/public", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, ActivityTracker(recorder))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	time.Sleep(50 * time.Millisecond)
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	assert.Empty(t, recorder.touched)
}

func TestTokenBlacklist_ConcurrentAccess(t *testing.T) {
	// GIVEN: Logout handlers, JWT checks and the sweeper sharing the
	//        blacklist
	// WHEN: They run concurrently
	// THEN: No write is lost (run with -race to catch unsynchronized
	//       access)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				BlacklistToken(fmt.Sprintf("tok-%d-%d", i, j), time.Now().Add(time.Hour))
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				IsTokenBlacklisted(fmt.Sprintf("tok-%d-%d", i, j))
			}
		}(i)
		go func() {
			defer wg.Done()
			sweepBlacklist(time.Now())
		}()
	}
	wg.Wait()

	assert.True(t, IsTokenBlacklisted("tok-0-0"))
}

func TestSweepBlacklist_RemovesOnlyExpiredTokens(t *testing.T) {
	BlacklistToken("expired-token", time.Now().Add(-time.Minute))
	BlacklistToken("live-token", time.Now().Add(time.Hour))

	sweepBlacklist(time.Now())

	assert.False(t, IsTokenBlacklisted("expired-token"))
	assert.True(t, IsTokenBlacklisted("live-token"))
}
