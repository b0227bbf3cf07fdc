package cache

import (
	"testing"
	"time"

	"fleetops-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	redisClient "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestManager(t *testing.T) (*RedisManager, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redisClient.NewClient(&redisClient.Options{Addr: mr.Addr()})
	config := DefaultConfig()
	config.KeyPrefix = "test:"

	return NewRedisManager(client, config), mr
}

func TestRedisManager_FloatListRoundTrip(t *testing.T) {
	manager, _ := newTestManager(t)

	floats := []*models.Float{
		{
			ID:             primitive.NewObjectID(),
			OrganisationID: "org-1",
			DriverID:       "drv-1",
			AmountMinor:    50000,
			RemainingMinor: 42000,
			Active:         true,
		},
	}

	require.NoError(t, manager.SetFloatList("org-1", "float_list:org-1:all", floats, 30*time.Second))

	cached, err := manager.GetFloatList("float_list:org-1:all")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, floats[0].ID, cached[0].ID)
	assert.Equal(t, int64(42000), cached[0].RemainingMinor)
	assert.True(t, cached[0].Active)
}

func TestRedisManager_MissReturnsNil(t *testing.T) {
	manager, _ := newTestManager(t)

	cached, err := manager.GetFloatList("float_list:org-1:all")
	assert.NoError(t, err)
	assert.Nil(t, cached)

	var dest map[string]string
	assert.NoError(t, manager.Get("indicators:org-1:v1", &dest))
	assert.Nil(t, dest)
}

func TestRedisManager_GenericRoundTrip(t *testing.T) {
	manager, _ := newTestManager(t)

	value := map[string]int{"tyres": 300, "service": 1200}
	require.NoError(t, manager.Set("org-1", "indicators:org-1:v1", value, time.Minute))

	var cached map[string]int
	require.NoError(t, manager.Get("indicators:org-1:v1", &cached))
	assert.Equal(t, value, cached)
}

func TestRedisManager_InvalidateOrganisation(t *testing.T) {
	manager, _ := newTestManager(t)

	require.NoError(t, manager.Set("org-1", "float_list:org-1:all", "a", time.Minute))
	require.NoError(t, manager.Set("org-1", "indicators:org-1:v1", "b", time.Minute))
	require.NoError(t, manager.Set("org-2", "float_list:org-2:all", "c", time.Minute))

	require.NoError(t, manager.InvalidateOrganisation("org-1"))

	var dest string
	require.NoError(t, manager.Get("float_list:org-1:all", &dest))
	assert.Empty(t, dest)
	require.NoError(t, manager.Get("indicators:org-1:v1", &dest))
	assert.Empty(t, dest)

	// Other organisations are untouched.
	require.NoError(t, manager.Get("float_list:org-2:all", &dest))
	assert.Equal(t, "c", dest)
}

func TestRedisManager_TTLExpiry(t *testing.T) {
	manager, mr := newTestManager(t)

	require.NoError(t, manager.Set("org-1", "float_list:org-1:all", "a", 10*time.Second))

	mr.FastForward(11 * time.Second)

	var dest string
	require.NoError(t, manager.Get("float_list:org-1:all", &dest))
	assert.Empty(t, dest)
}

func TestConfig_TTLFor(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 30*time.Second, config.TTLFor(DataFloatList))
	assert.Equal(t, 120*time.Second, config.TTLFor(DataIndicators))
	assert.Equal(t, config.DefaultTTL, config.TTLFor("unknown"))
}
