package postgres

import (
	"context"
	"fmt"

	"clickup_sync/internal/domain"
)

const sprintInsert = `
		INSERT INTO %s (
			id, created_at, is_deleted, modifieddate, board_id,
			end_date, goal, name, sprint_jira_id, start_date,
			state, org_id
		) VALUES (
			:id, :created_at, :is_deleted, :modifieddate, :board_id,
			:end_date, :goal, :name, :sprint_jira_id, :start_date,
			:state, :org_id
		)`

func (s *Sink) InsertSprints(ctx context.Context, sprints []domain.Sprint) (*domain.InsertResult, error) {
	query := fmt.Sprintf(sprintInsert, s.table(tableSprint))
	return insertBatch(ctx, s, tableSprint, query, sprints, func(sp domain.Sprint) string {
		return sp.ID
	})
}
