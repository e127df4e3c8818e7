package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/pitwall/internal/cache"
	"github.com/charlesng35/pitwall/internal/database/testutil"
	"github.com/charlesng35/pitwall/internal/models"
	"github.com/charlesng35/pitwall/internal/repository/gormrepo"
)

type testEnv struct {
	db      *gorm.DB
	repo    *gormrepo.Store
	store   *countingStore
	teams   *TeamService
	drivers *DriverService
}

func newTestEnv(t *testing.T, opts ...TeamServiceOption) *testEnv {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	repo, err := gormrepo.New(db)
	require.NoError(t, err)

	store := &countingStore{Store: cache.NewMemoryStore(0)}
	teams, err := NewTeamService(repo, store, opts...)
	require.NoError(t, err)
	drivers, err := NewDriverService(repo)
	require.NoError(t, err)

	return &testEnv{db: db, repo: repo, store: store, teams: teams, drivers: drivers}
}

func ptr[T any](v T) *T {
	return &v
}

func teamInput(name string, used, actual, personnel float64) models.TeamInput {
	return models.TeamInput{
		Name:                  name,
		UsedEquipmentRating:   ptr(used),
		ActualEquipmentRating: ptr(actual),
		PersonnelRating:       ptr(personnel),
	}
}

func (e *testEnv) mustCreateTeam(t *testing.T, name string, used, actual, personnel float64) *models.Team {
	t.Helper()

	team, err := e.teams.CreateTeam(context.Background(), teamInput(name, used, actual, personnel))
	require.NoError(t, err)
	return team
}

func (e *testEnv) mustRegisterDriver(t *testing.T, name string) *models.Driver {
	t.Helper()

	driver, err := e.drivers.Register(context.Background(), name, nil)
	require.NoError(t, err)
	return driver
}

// countingStore records cache traffic on top of a real store.
type countingStore struct {
	cache.Store

	mu      sync.Mutex
	gets    int
	hits    int
	deletes []string
}

func (c *countingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok, err := c.Store.Get(ctx, key)
	c.mu.Lock()
	c.gets++
	if ok {
		c.hits++
	}
	c.mu.Unlock()
	return value, ok, err
}

func (c *countingStore) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	c.deletes = append(c.deletes, keys...)
	c.mu.Unlock()
	return c.Store.Delete(ctx, keys...)
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Store.Set(ctx, key, value, ttl)
}
