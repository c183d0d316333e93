package activity

import (
	"sync"
	"sync/atomic"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"mergington.dev/activities/internal/pkg/observability"
)

type entry struct {
	mu       sync.Mutex
	activity *Model
}

// Repo owns the activity directory. The set of activities is fixed at construction; only
// participant lists change afterwards, each under its activity's own lock.
type Repo struct {
	order   []string
	entries map[string]*entry

	// version is bumped inside the critical section of every successful mutation
	version atomic.Uint64
}

func NewRepo(seed Roster) (*Repo, error) {
	r := &Repo{
		order:   make([]string, 0, len(seed)),
		entries: make(map[string]*entry, len(seed)),
	}
	for _, m := range seed {
		if _, ok := r.entries[m.Name]; ok {
			return nil, errors.Wrapf(ErrInvalidSeed, "duplicate activity %q", m.Name)
		}
		c, err := clone(m)
		if err != nil {
			return nil, err
		}
		r.order = append(r.order, m.Name)
		r.entries[m.Name] = &entry{activity: c}
		observability.Participants.WithLabelValues(m.Name).Set(float64(len(c.Participants)))
	}
	return r, nil
}

func clone(m *Model) (*Model, error) {
	var c Model
	if err := copier.CopyWithOption(&c, m, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrapf(err, "copy activity %q", m.Name)
	}
	if c.Participants == nil {
		c.Participants = []string{}
	}
	return &c, nil
}

func (r *Repo) Version() uint64 {
	return r.version.Load()
}

func (r *Repo) Names() []string {
	return append([]string(nil), r.order...)
}

// GetActivities returns a deep copy of every activity in directory order, along with the directory
// version read before the copy was taken.
func (r *Repo) GetActivities() (*Directory, error) {
	dir := &Directory{
		Version:    r.Version(),
		Activities: make(Roster, 0, len(r.order)),
	}
	for _, name := range r.order {
		m, err := r.GetActivity(name)
		if err != nil {
			return nil, err
		}
		dir.Activities = append(dir.Activities, m)
	}
	return dir, nil
}

func (r *Repo) GetActivity(name string) (*Model, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, ErrActivityNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.activity)
}

// AddParticipant appends email to the activity's participants and returns the new participant count.
func (r *Repo) AddParticipant(name, email string, enforceCapacity bool) (int, error) {
	e, ok := r.entries[name]
	if !ok {
		return 0, ErrActivityNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activity.HasParticipant(email) {
		return 0, ErrAlreadySignedUp
	}
	if enforceCapacity && e.activity.Full() {
		return 0, ErrActivityFull
	}

	e.activity.Participants = append(e.activity.Participants, email)
	r.changed(e.activity)
	return len(e.activity.Participants), nil
}

// RemoveParticipant removes email from the activity's participants and returns the new participant count.
func (r *Repo) RemoveParticipant(name, email string) (int, error) {
	e, ok := r.entries[name]
	if !ok {
		return 0, ErrActivityNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.activity.HasParticipant(email) {
		return 0, ErrNotSignedUp
	}

	e.activity.Participants = lo.Without(e.activity.Participants, email)
	r.changed(e.activity)
	return len(e.activity.Participants), nil
}

// changed must be called with the entry lock held.
func (r *Repo) changed(m *Model) {
	r.version.Add(1)
	observability.Participants.WithLabelValues(m.Name).Set(float64(len(m.Participants)))
}
