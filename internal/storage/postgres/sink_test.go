package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clickup_sync/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// unreachableDSN points at a port nothing listens on.
const unreachableDSN = "host=127.0.0.1 port=1 user=nobody dbname=nothing sslmode=disable connect_timeout=2"

func TestSink_EmptyBatchDoesNotConnect(t *testing.T) {
	sink := NewSink(SinkConfig{DSN: unreachableDSN, Schema: "insightly_jira"}, testLogger())
	ctx := context.Background()

	res, err := sink.InsertBoards(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, tableBoard, res.Table)
	assert.Zero(t, res.Attempted)

	res, err = sink.InsertSprints(ctx, []domain.Sprint{})
	require.NoError(t, err)
	assert.Zero(t, res.Inserted)

	res, err = sink.InsertIssues(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Failures)
}

func TestSink_ConnectionFailure(t *testing.T) {
	sink := NewSink(SinkConfig{DSN: unreachableDSN, Schema: "insightly_jira"}, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := sink.InsertBoards(ctx, []domain.Board{{EntityID: "10"}})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrConnection))
}

func TestSink_TableQuoting(t *testing.T) {
	sink := NewSink(SinkConfig{Schema: "insightly_jira"}, testLogger())
	assert.Equal(t, `"insightly_jira"."board"`, sink.table(tableBoard))

	sink = NewSink(SinkConfig{Schema: `we"ird`}, testLogger())
	assert.Equal(t, `"we""ird"."issue"`, sink.table(tableIssue))
}
