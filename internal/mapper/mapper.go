// Package mapper translates ClickUp records into insightly_jira rows.
//
// Every function here is total: missing fields become nil or a default,
// never an error.
package mapper

import (
	"time"

	"github.com/google/uuid"

	"clickup_sync/internal/domain"
	"clickup_sync/internal/source/clickup"
)

type Mapper struct {
	orgID string
	newID func() string
}

func New(orgID string) *Mapper {
	return &Mapper{
		orgID: orgID,
		newID: uuid.NewString,
	}
}

// OrgID returns the organization stamped on every row.
func (m *Mapper) OrgID() string {
	return m.orgID
}

// Board maps a folder to a board row. The uuid column gets a fresh surrogate
// id on every call.
func (m *Mapper) Board(folder clickup.Folder, spaceID string, runAt time.Time) domain.Board {
	folderID := folder.ID.String()

	return domain.Board{
		EntityID:            folderID,
		Name:                folder.Name.Ptr(),
		BoardKey:            folderID,
		CreatedAt:           runAt,
		ModifiedDate:        runAt,
		OrgID:               m.orgID,
		AccountID:           spaceID,
		Active:              !folder.Archived,
		IsDeleted:           folder.Archived,
		IsPrivate:           folder.Hidden,
		UUID:                m.newID(),
		AutoGeneratedSprint: false,
	}
}

// Sprint maps a list to a sprint row under the board of folderID.
func (m *Mapper) Sprint(list clickup.List, folderID string, runAt time.Time) domain.Sprint {
	listID := list.ID.String()

	return domain.Sprint{
		ID:           listID,
		CreatedAt:    runAt,
		IsDeleted:    list.Archived,
		ModifiedDate: runAt,
		BoardID:      folderID,
		EndDate:      FromEpochMillis(list.DueDate),
		Goal:         list.Content.Ptr(),
		Name:         list.Name.Ptr(),
		SprintJiraID: listID,
		StartDate:    FromEpochMillis(list.StartDate),
		State:        list.Status.Ptr(),
		OrgID:        m.orgID,
	}
}

// Issue maps a task to an issue row. Only the first assignee is kept since
// the issue table has a single assignee column.
func (m *Mapper) Issue(task clickup.Task, folderID, listID, spaceID string, runAt time.Time) domain.Issue {
	taskID := task.ID.String()
	creatorID := creatorID(task.Creator)

	return domain.Issue{
		ID:             taskID,
		CreatedAt:      fromEpochMillisOr(task.DateCreated, runAt),
		ModifiedDate:   fromEpochMillisOr(task.DateUpdated, runAt),
		BoardID:        folderID,
		Priority:       priority(task.Priority),
		ResolutionDate: FromEpochMillis(task.DateClosed),
		TimeSpent:      int64Ptr(task.TimeEstimate),
		ParentID:       task.Parent.Ptr(),
		IsDeleted:      task.Archived,
		AssigneeID:     firstAssignee(task.Assignees),
		CreatorID:      creatorID,
		DueDate:        FromEpochMillis(task.DueDate),
		IssueID:        taskID,
		Key:            task.CustomID.Ptr(),
		ParentIssueID:  task.TopLevelParent.Ptr(),
		ProjectID:      spaceID,
		ReporterID:     cloneString(creatorID),
		Status:         status(task.Status),
		Summary:        task.Name.Ptr(),
		Description:    task.Description.Ptr(),
		SprintID:       listID,
		IssueURL:       task.URL.Ptr(),
		OrgID:          m.orgID,
	}
}

func firstAssignee(users []clickup.User) *string {
	if len(users) == 0 {
		return nil
	}
	return users[0].ID.Ptr()
}

func creatorID(u *clickup.User) *string {
	if u == nil {
		return nil
	}
	return u.ID.Ptr()
}

func priority(p *clickup.Priority) *string {
	if p == nil {
		return nil
	}
	return p.Priority.Ptr()
}

func status(s *clickup.Status) *string {
	if s == nil {
		return nil
	}
	return s.Status.Ptr()
}

func int64Ptr(v clickup.Text) *int64 {
	n, ok := v.Int64()
	if !ok {
		return nil
	}
	return &n
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
