package activity

import (
	"bytes"

	"github.com/goccy/go-json"
)

type Model struct {
	// Name is the key of the activity in the directory; it is never rendered as a field.
	Name            string   `json:"-" validate:"required,notblank"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants" validate:"gt=0"`
	Participants    []string `json:"participants" validate:"unique,dive,required"`
}

func (m *Model) HasParticipant(email string) bool {
	for _, p := range m.Participants {
		if p == email {
			return true
		}
	}
	return false
}

func (m *Model) Full() bool {
	return len(m.Participants) >= m.MaxParticipants
}

// Roster is an ordered list of activities. It renders as a JSON object keyed by activity name,
// keeping the order of the list.
type Roster []*Model

func (r Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Directory is a point-in-time copy of every activity together with the directory version it
// was taken at.
type Directory struct {
	Version    uint64
	Activities Roster
}
