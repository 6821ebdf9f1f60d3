package clickup

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text is a JSON scalar kept in its textual form. ClickUp sends ids and
// timestamps as strings or numbers depending on the endpoint. Null and
// missing values decode to an invalid Text; an empty string is valid.
type Text struct {
	Value string
	Valid bool
}

// NewText returns a valid Text holding v.
func NewText(v string) Text {
	return Text{Value: v, Valid: true}
}

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Text{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = NewText(s)
	case '{', '[':
		// Not a scalar; treated as absent.
	default:
		*t = NewText(string(data))
	}
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// String returns the value, or "" when absent.
func (t Text) String() string {
	return t.Value
}

// Ptr returns a pointer to the value, or nil when absent.
func (t Text) Ptr() *string {
	if !t.Valid {
		return nil
	}
	v := t.Value
	return &v
}

// Int64 parses the value as a base-10 integer.
func (t Text) Int64() (int64, bool) {
	if !t.Valid {
		return 0, false
	}
	n, err := strconv.ParseInt(t.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

type Space struct {
	ID   Text `json:"id"`
	Name Text `json:"name"`
}

type Folder struct {
	ID       Text `json:"id"`
	Name     Text `json:"name"`
	Archived bool `json:"archived"`
	Hidden   bool `json:"hidden"`
}

type List struct {
	ID        Text       `json:"id"`
	Name      Text       `json:"name"`
	Archived  bool       `json:"archived"`
	Content   Text       `json:"content"`
	Status    ListStatus `json:"status"`
	StartDate Text       `json:"start_date"`
	DueDate   Text       `json:"due_date"`
}

// ListStatus accepts both a bare status string and the
// {"status": "...", "color": "..."} object the lists endpoint returns.
type ListStatus struct {
	Text
}

func (s *ListStatus) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj Status
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		s.Text = obj.Status
		return nil
	}
	return s.Text.UnmarshalJSON(trimmed)
}

type Task struct {
	ID             Text      `json:"id"`
	Name           Text      `json:"name"`
	Description    Text      `json:"description"`
	URL            Text      `json:"url"`
	CustomID       Text      `json:"custom_id"`
	Parent         Text      `json:"parent"`
	TopLevelParent Text      `json:"top_level_parent"`
	Archived       bool      `json:"archived"`
	DateCreated    Text      `json:"date_created"`
	DateUpdated    Text      `json:"date_updated"`
	DueDate        Text      `json:"due_date"`
	DateClosed     Text      `json:"date_closed"`
	TimeEstimate   Text      `json:"time_estimate"`
	Assignees      []User    `json:"assignees"`
	Creator        *User     `json:"creator"`
	Priority       *Priority `json:"priority"`
	Status         *Status   `json:"status"`
}

type User struct {
	ID       Text   `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Priority struct {
	ID       Text `json:"id"`
	Priority Text `json:"priority"`
}

type Status struct {
	Status Text   `json:"status"`
	Type   string `json:"type,omitempty"`
}

type spacesResponse struct {
	Spaces []Space `json:"spaces"`
}

type foldersResponse struct {
	Folders []Folder `json:"folders"`
}

type listsResponse struct {
	Lists []List `json:"lists"`
}

type tasksResponse struct {
	Tasks []Task `json:"tasks"`
}
