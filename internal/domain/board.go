package domain

import "time"

// Board is a row of the board table. One board is produced per ClickUp folder.
type Board struct {
	EntityID            string    `db:"entity_id"`
	Name                *string   `db:"name"`
	DisplayName         *string   `db:"display_name"`
	BoardKey            string    `db:"board_key"`
	CreatedAt           time.Time `db:"created_at"`
	ModifiedDate        time.Time `db:"modifieddate"`
	OrgID               string    `db:"org_id"`
	AccountID           string    `db:"account_id"`
	Active              bool      `db:"active"`
	IsDeleted           bool      `db:"is_deleted"`
	IsPrivate           bool      `db:"is_private"`
	UUID                string    `db:"uuid"`
	AvatarURI           *string   `db:"avatar_uri"`
	Self                *string   `db:"self"`
	JiraBoardID         *string   `db:"jira_board_id"`
	AutoGeneratedSprint bool      `db:"auto_generated_sprint"`
	AzureProjectID      *string   `db:"azure_project_id"`
	AzureProjectName    *string   `db:"azure_project_name"`
	AzureOrgName        *string   `db:"azure_org_name"`
}

func (b Board) DisplayLabel() string {
	return label(b.Name, b.EntityID)
}

// label picks the human readable name of a row, falling back to its key.
func label(name *string, key string) string {
	if name != nil {
		return *name
	}
	return key
}
