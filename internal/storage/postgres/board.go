package postgres

import (
	"context"
	"fmt"

	"clickup_sync/internal/domain"
)

const boardInsert = `
		INSERT INTO %s (
			entity_id, name, display_name, board_key, created_at, modifieddate,
			org_id, account_id, active, is_deleted, is_private, uuid,
			avatar_uri, self, jira_board_id, auto_generated_sprint,
			azure_project_id, azure_project_name, azure_org_name
		) VALUES (
			:entity_id, :name, :display_name, :board_key, :created_at, :modifieddate,
			:org_id, :account_id, :active, :is_deleted, :is_private, :uuid,
			:avatar_uri, :self, :jira_board_id, :auto_generated_sprint,
			:azure_project_id, :azure_project_name, :azure_org_name
		)`

// InsertBoards inserts board rows; see insertBatch for failure handling.
func (s *Sink) InsertBoards(ctx context.Context, boards []domain.Board) (*domain.InsertResult, error) {
	query := fmt.Sprintf(boardInsert, s.table(tableBoard))
	return insertBatch(ctx, s, tableBoard, query, boards, func(b domain.Board) string {
		return b.EntityID
	})
}
