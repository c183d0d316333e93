package activity

import (
	_ "embed"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/util/rekuest"
)

//go:embed seed.json
var defaultSeed []byte

var ErrInvalidSeed = errors.New("invalid activity seed")

// NewSeed loads the activities the directory starts with: the file at SeedPath when configured,
// the embedded list otherwise.
func NewSeed(conf *appconfig.Config) (Roster, error) {
	data := defaultSeed
	source := "embedded"
	if conf.SeedPath != "" {
		b, err := os.ReadFile(conf.SeedPath)
		if err != nil {
			return nil, errors.Wrapf(err, "read seed file %q", conf.SeedPath)
		}
		data = b
		source = conf.SeedPath
	}

	roster, err := ParseSeed(data, conf.EnforceCapacity)
	if err != nil {
		return nil, errors.Wrapf(err, "load seed from %s", source)
	}

	log.Debug().
		Str("evt.name", "activity.seed.loaded").
		Str("source", source).
		Int("count", len(roster)).
		Msg("activity seed loaded")

	return roster, nil
}

// ParseSeed reads a JSON object of activity name to activity record, keeping document order.
// When enforceCapacity is set, a seeded roster may not exceed its activity's capacity.
func ParseSeed(data []byte, enforceCapacity bool) (Roster, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(ErrInvalidSeed, "malformed JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.Wrap(ErrInvalidSeed, "top level must be an object")
	}

	var (
		roster Roster
		err    error
	)
	seen := make(map[string]struct{})
	doc.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, ok := seen[name]; ok {
			err = errors.Wrapf(ErrInvalidSeed, "duplicate activity %q", name)
			return false
		}
		seen[name] = struct{}{}

		m := &Model{}
		if err = json.Unmarshal([]byte(value.Raw), m); err != nil {
			err = errors.Wrapf(ErrInvalidSeed, "activity %q: %s", name, err)
			return false
		}
		m.Name = name
		if m.Participants == nil {
			m.Participants = []string{}
		}

		if verr := rekuest.Validate.Struct(m); verr != nil {
			err = errors.Wrapf(ErrInvalidSeed, "activity %q: %s", name, verr)
			return false
		}
		if enforceCapacity && len(m.Participants) > m.MaxParticipants {
			err = errors.Wrapf(ErrInvalidSeed, "activity %q: %d participants exceed capacity %d", name, len(m.Participants), m.MaxParticipants)
			return false
		}

		roster = append(roster, m)
		return true
	})
	if err != nil {
		return nil, err
	}

	return roster, nil
}
