package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/auth/migrations"
	"github.com/dnlksnvv/Trainova-sub001/shared/interfaces"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type BlacklistRepoSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pool        *pgxpool.Pool
	repo        interfaces.TokenBlacklistRepository
}

func TestBlacklistRepoSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(BlacklistRepoSuite))
}

func (s *BlacklistRepoSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	s.pool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err)

	host, err := s.pgContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := s.pgContainer.MappedPort(s.ctx, "5432/tcp")
	require.NoError(s.T(), err)

	err = RunMigrations(migrations.FS, PostgresConfig{
		Host:     host,
		Port:     port.Port(),
		User:     "testuser",
		Password: "testpass",
		Name:     "test_db",
		SSLMode:  "disable",
	})
	require.NoError(s.T(), err, "Failed to run migrations")

	s.repo = NewPgTokenBlacklistRepository(s.pool, false, zap.NewNop())
}

func (s *BlacklistRepoSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *BlacklistRepoSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE token_blacklist`)
	require.NoError(s.T(), err)
}

func (s *BlacklistRepoSuite) countRows() int {
	var count int
	err := s.pool.QueryRow(s.ctx, `SELECT count(*) FROM token_blacklist`).Scan(&count)
	require.NoError(s.T(), err)
	return count
}

func (s *BlacklistRepoSuite) TestAddIsIdempotent() {
	token := "integration-test-token-1"
	expiresAt := time.Now().Add(time.Hour)

	s.Require().True(s.repo.Add(s.ctx, token, expiresAt))
	s.Require().True(s.repo.Add(s.ctx, token, expiresAt), "re-adding the same token must succeed")
	s.Equal(1, s.countRows(), "duplicate Add must not create a second row")
}

func (s *BlacklistRepoSuite) TestIsBlacklisted() {
	token := "integration-test-token-2"

	s.False(s.repo.IsBlacklisted(s.ctx, token))
	s.Require().True(s.repo.Add(s.ctx, token, time.Now().Add(time.Hour)))
	s.True(s.repo.IsBlacklisted(s.ctx, token))

	// Lookups match the exact token string, nothing fuzzier.
	s.False(s.repo.IsBlacklisted(s.ctx, token+"x"))
}

func (s *BlacklistRepoSuite) TestCleanExpiredRemovesOnlyExpiredRows() {
	s.Require().True(s.repo.Add(s.ctx, "expired-token", time.Now().Add(-time.Hour)))
	s.Require().True(s.repo.Add(s.ctx, "live-token", time.Now().Add(time.Hour)))

	removed, err := s.repo.CleanExpired(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), removed)

	s.False(s.repo.IsBlacklisted(s.ctx, "expired-token"))
	s.True(s.repo.IsBlacklisted(s.ctx, "live-token"))

	// A second sweep finds nothing to remove.
	removed, err = s.repo.CleanExpired(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), removed)
}

func (s *BlacklistRepoSuite) TestFailurePolicyOnClosedPool() {
	deadPool, err := pgxpool.New(s.ctx, fmt.Sprintf("postgres://testuser:testpass@%s/test_db?sslmode=disable", "127.0.0.1:1"))
	s.Require().NoError(err)
	deadPool.Close()

	failOpen := NewPgTokenBlacklistRepository(deadPool, false, zap.NewNop())
	failClosed := NewPgTokenBlacklistRepository(deadPool, true, zap.NewNop())

	s.False(failOpen.IsBlacklisted(s.ctx, "any-token"), "fail-open store treats tokens as not revoked")
	s.True(failClosed.IsBlacklisted(s.ctx, "any-token"), "fail-closed store rejects everything")
	s.False(failOpen.Add(s.ctx, "any-token", time.Now().Add(time.Hour)), "Add reports failure without erroring")
}
