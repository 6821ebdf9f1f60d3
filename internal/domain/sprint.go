package domain

import "time"

// Sprint is a row of the sprint table. One sprint is produced per ClickUp list.
type Sprint struct {
	ID           string     `db:"id"`
	CreatedAt    time.Time  `db:"created_at"`
	IsDeleted    bool       `db:"is_deleted"`
	ModifiedDate time.Time  `db:"modifieddate"`
	BoardID      string     `db:"board_id"`
	EndDate      *time.Time `db:"end_date"`
	Goal         *string    `db:"goal"`
	Name         *string    `db:"name"`
	SprintJiraID string     `db:"sprint_jira_id"`
	StartDate    *time.Time `db:"start_date"`
	State        *string    `db:"state"`
	OrgID        string     `db:"org_id"`
}

func (s Sprint) DisplayLabel() string {
	return label(s.Name, s.ID)
}
