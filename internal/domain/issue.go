package domain

import "time"

// Issue is a row of the issue table. One issue is produced per ClickUp task.
type Issue struct {
	ID             string     `db:"id"`
	CreatedAt      time.Time  `db:"created_at"`
	ModifiedDate   time.Time  `db:"modifieddate"`
	BoardID        string     `db:"board_id"`
	Priority       *string    `db:"priority"`
	ResolutionDate *time.Time `db:"resolution_date"`
	TimeSpent      *int64     `db:"time_spent"`
	ParentID       *string    `db:"parent_id"`
	IsDeleted      bool       `db:"is_deleted"`
	AssigneeID     *string    `db:"assignee_id"`
	CreatorID      *string    `db:"creator_id"`
	DueDate        *time.Time `db:"due_date"`
	IssueID        string     `db:"issue_id"`
	Key            *string    `db:"key"`
	ParentIssueID  *string    `db:"parent_issue_id"`
	ProjectID      string     `db:"project_id"`
	ReporterID     *string    `db:"reporter_id"`
	Status         *string    `db:"status"`
	Summary        *string    `db:"summary"`
	Description    *string    `db:"description"`
	SprintID       string     `db:"sprint_id"`
	IssueURL       *string    `db:"issue_url"`
	OrgID          string     `db:"org_id"`
}

func (i Issue) DisplayLabel() string {
	return label(i.Summary, i.ID)
}
