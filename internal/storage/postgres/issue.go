package postgres

import (
	"context"
	"fmt"

	"clickup_sync/internal/domain"
)

const issueInsert = `
		INSERT INTO %s (
			id, created_at, modifieddate, board_id, priority,
			resolution_date, time_spent, parent_id, is_deleted,
			assignee_id, creator_id, due_date, issue_id, key,
			parent_issue_id, project_id, reporter_id, status,
			summary, description, sprint_id, issue_url, org_id
		) VALUES (
			:id, :created_at, :modifieddate, :board_id, :priority,
			:resolution_date, :time_spent, :parent_id, :is_deleted,
			:assignee_id, :creator_id, :due_date, :issue_id, :key,
			:parent_issue_id, :project_id, :reporter_id, :status,
			:summary, :description, :sprint_id, :issue_url, :org_id
		)`

func (s *Sink) InsertIssues(ctx context.Context, issues []domain.Issue) (*domain.InsertResult, error) {
	query := fmt.Sprintf(issueInsert, s.table(tableIssue))
	return insertBatch(ctx, s, tableIssue, query, issues, func(i domain.Issue) string {
		return i.ID
	})
}
