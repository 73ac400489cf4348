//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/mmynk/duoreg/internal/models"
	"github.com/mmynk/duoreg/internal/storage"
	"github.com/mmynk/duoreg/internal/storage/postgres"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	store     *postgres.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("duoreg"),
		tcpostgres.WithUsername("duoreg"),
		tcpostgres.WithPassword("duoreg"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.store, err = postgres.Open(ctx, dsn)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.store != nil {
		s.store.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func newEntry(fp, category string, at time.Time) *models.Entry {
	return &models.Entry{
		SubmittedAt: at,
		Athlete1:    models.Athlete{Name: "Ana", Kit: "M"},
		Athlete2:    models.Athlete{Name: "Bia", Kit: "G"},
		Duo:         models.Duo{Category: category},
		Consent:     true,
		Uniforms:    "M / G",
		Proof:       models.Proof{Filename: fp + ".png", URL: "/uploads/" + fp + ".png", Fingerprint: fp, MimeType: "image/png"},
		Status:      models.StatusPendingReview,
		Validation:  models.Validation{Score: 90, MimeType: "image/png"},
	}
}

func (s *PostgresStoreSuite) TestRoundTripAndFilters() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	suffix := base.Format("150405.000000000")

	elite := "Elite-" + suffix
	amador := "Amador-" + suffix

	older := newEntry("pg-a-"+suffix, elite, base)
	newer := newEntry("pg-b-"+suffix, elite, base.Add(time.Minute))
	other := newEntry("pg-c-"+suffix, amador, base.Add(2*time.Minute))
	for _, e := range []*models.Entry{older, newer, other} {
		s.Require().NoError(s.store.CreateEntry(ctx, e))
	}

	got, err := s.store.GetEntry(ctx, newer.ID)
	s.Require().NoError(err)
	s.Equal(newer.Proof, got.Proof)
	s.True(newer.SubmittedAt.Equal(got.SubmittedAt))

	found, err := s.store.FindByFingerprint(ctx, older.Proof.Fingerprint)
	s.Require().NoError(err)
	s.Equal(older.ID, found.ID)

	s.Require().NoError(s.store.UpdateStatus(ctx, other.ID, models.StatusRejected))
	s.ErrorIs(s.store.UpdateStatus(ctx, "missing", models.StatusRejected), storage.ErrNotFound)

	pending, err := s.store.ListEntries(ctx, storage.Filter{Category: elite, Status: models.StatusPendingReview})
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(newer.ID, pending[0].ID)
	s.Equal(older.ID, pending[1].ID)

	rejected, err := s.store.ListEntries(ctx, storage.Filter{Category: amador, Status: models.StatusPendingReview})
	s.Require().NoError(err)
	s.Empty(rejected)

	categories, err := s.store.ListCategories(ctx)
	s.Require().NoError(err)
	s.Contains(categories, amador)
	s.Contains(categories, elite)
}

// TestConcurrentDuplicateFingerprint verifies the unique constraint lets
// exactly one of many identical proofs through.
func (s *PostgresStoreSuite) TestConcurrentDuplicateFingerprint() {
	ctx := context.Background()
	fp := "pg-race-" + time.Now().Format("150405.000000000")

	const goroutines = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.CreateEntry(ctx, newEntry(fp, "Elite", time.Now()))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if s.ErrorIs(err, storage.ErrDuplicateFingerprint) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, created)
	s.Equal(goroutines-1, conflicts)
}
