//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"clickup_sync/internal/domain"
	"clickup_sync/testdata/utils"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
	sink      *Sink
	now       time.Time
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_insightly_jira.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db

	s.sink = NewSink(SinkConfig{DSN: connStr, Schema: "insightly_jira"}, testLogger())
	s.now = time.Now().UTC().Truncate(time.Second)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, "TRUNCATE insightly_jira.issue, insightly_jira.sprint, insightly_jira.board")
	s.Require().NoError(err)
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) board(id, name, uuid string) domain.Board {
	return domain.Board{
		EntityID:     id,
		Name:         utils.Ptr(name),
		BoardKey:     id,
		CreatedAt:    s.now,
		ModifiedDate: s.now,
		OrgID:        "org-1",
		AccountID:    "1",
		Active:       true,
		UUID:         uuid,
	}
}

func (s *PostgresIntegrationSuite) count(table string) int {
	var n int
	s.Require().NoError(s.db.GetContext(s.ctx, &n, "SELECT COUNT(*) FROM insightly_jira."+table))
	return n
}

func (s *PostgresIntegrationSuite) TestInsertBoards() {
	boards := []domain.Board{
		s.board("10", "Alpha", "7b4f4c3e-5b0a-4a39-9c53-0d1d2c0e8a01"),
		s.board("11", "Beta", "7b4f4c3e-5b0a-4a39-9c53-0d1d2c0e8a02"),
	}

	res, err := s.sink.InsertBoards(s.ctx, boards)
	s.Require().NoError(err)
	s.Equal(2, res.Attempted)
	s.Equal(2, res.Inserted)
	s.Empty(res.Failures)
	s.Equal(2, s.count("board"))

	var got struct {
		Name      string    `db:"name"`
		AccountID string    `db:"account_id"`
		Active    bool      `db:"active"`
		CreatedAt time.Time `db:"created_at"`
	}
	err = s.db.GetContext(s.ctx, &got, "SELECT name, account_id, active, created_at FROM insightly_jira.board WHERE entity_id = $1", "10")
	s.Require().NoError(err)
	s.Equal("Alpha", got.Name)
	s.Equal("1", got.AccountID)
	s.True(got.Active)
	s.WithinDuration(s.now, got.CreatedAt, time.Second)
}

func (s *PostgresIntegrationSuite) TestInsertBoards_PartialFailure() {
	boards := []domain.Board{
		s.board("10", "First", "7b4f4c3e-5b0a-4a39-9c53-0d1d2c0e8a01"),
		s.board("10", "Duplicate", "7b4f4c3e-5b0a-4a39-9c53-0d1d2c0e8a02"),
		s.board("12", "Third", "7b4f4c3e-5b0a-4a39-9c53-0d1d2c0e8a03"),
	}

	res, err := s.sink.InsertBoards(s.ctx, boards)
	s.Require().NoError(err)
	s.Equal(3, res.Attempted)
	s.Equal(2, res.Inserted)
	s.Require().Len(res.Failures, 1)
	s.Equal("Duplicate", res.Failures[0].Label)
	s.Equal("10", res.Failures[0].Key)

	var names []string
	err = s.db.SelectContext(s.ctx, &names, "SELECT name FROM insightly_jira.board ORDER BY entity_id")
	s.Require().NoError(err)
	s.Equal([]string{"First", "Third"}, names)
}

func (s *PostgresIntegrationSuite) TestInsertBoards_RerunSkipsEverything() {
	boards := []domain.Board{
		s.board("10", "Alpha", "7b4f4c3e-5b0a-4a39-9c53-0d1d2c0e8a01"),
	}
	_, err := s.sink.InsertBoards(s.ctx, boards)
	s.Require().NoError(err)

	boards[0].UUID = "7b4f4c3e-5b0a-4a39-9c53-0d1d2c0e8a09"
	boards[0].Name = utils.Ptr("Renamed")
	res, err := s.sink.InsertBoards(s.ctx, boards)
	s.Require().NoError(err)
	s.Equal(0, res.Inserted)
	s.Len(res.Failures, 1)

	var name string
	err = s.db.GetContext(s.ctx, &name, "SELECT name FROM insightly_jira.board WHERE entity_id = $1", "10")
	s.Require().NoError(err)
	s.Equal("Alpha", name)
}

func (s *PostgresIntegrationSuite) TestInsertSprintsAndIssues() {
	_, err := s.sink.InsertBoards(s.ctx, []domain.Board{
		s.board("10", "F", "7b4f4c3e-5b0a-4a39-9c53-0d1d2c0e8a01"),
	})
	s.Require().NoError(err)

	start := utils.Unix(1700000000)
	sprints := []domain.Sprint{
		{
			ID:           "100",
			CreatedAt:    s.now,
			ModifiedDate: s.now,
			BoardID:      "10",
			Goal:         utils.Ptr("goal text"),
			Name:         utils.Ptr("L"),
			SprintJiraID: "100",
			StartDate:    &start,
			State:        utils.Ptr("open"),
			OrgID:        "org-1",
		},
		{
			ID:           "101",
			CreatedAt:    s.now,
			ModifiedDate: s.now,
			BoardID:      "missing-board",
			Name:         utils.Ptr("Orphan"),
			SprintJiraID: "101",
			OrgID:        "org-1",
		},
	}

	res, err := s.sink.InsertSprints(s.ctx, sprints)
	s.Require().NoError(err)
	s.Equal(1, res.Inserted)
	s.Require().Len(res.Failures, 1)
	s.Equal("Orphan", res.Failures[0].Label)

	var got struct {
		StartDate *time.Time `db:"start_date"`
		EndDate   *time.Time `db:"end_date"`
	}
	err = s.db.GetContext(s.ctx, &got, "SELECT start_date, end_date FROM insightly_jira.sprint WHERE id = $1", "100")
	s.Require().NoError(err)
	s.Require().NotNil(got.StartDate)
	s.True(start.Equal(*got.StartDate))
	s.Nil(got.EndDate)

	issues := []domain.Issue{
		{
			ID:           "1000",
			CreatedAt:    start,
			ModifiedDate: s.now,
			BoardID:      "10",
			Priority:     utils.Ptr("high"),
			CreatorID:    utils.Ptr("5"),
			IssueID:      "1000",
			ProjectID:    "1",
			ReporterID:   utils.Ptr("5"),
			Status:       utils.Ptr("open"),
			Summary:      utils.Ptr("T"),
			SprintID:     "100",
			TimeSpent:    utils.Ptr(int64(3600000)),
			OrgID:        "org-1",
		},
	}

	res, err = s.sink.InsertIssues(s.ctx, issues)
	s.Require().NoError(err)
	s.Equal(1, res.Inserted)
	s.Equal(1, s.count("issue"))

	var assignee *string
	err = s.db.GetContext(s.ctx, &assignee, "SELECT assignee_id FROM insightly_jira.issue WHERE id = $1", "1000")
	s.Require().NoError(err)
	s.Nil(assignee)
}

func (s *PostgresIntegrationSuite) TestInsert_UnknownSchemaIsFatal() {
	connStr, err := s.container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	sink := NewSink(SinkConfig{DSN: connStr, Schema: "does_not_exist"}, testLogger())
	res, err := sink.InsertBoards(s.ctx, []domain.Board{
		s.board("10", "F", "7b4f4c3e-5b0a-4a39-9c53-0d1d2c0e8a01"),
	})
	s.Error(err)
	s.Nil(res)
	s.NotErrorIs(err, ErrConnection)
	s.Equal(0, s.count("board"))
}
