package geo

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrMalformed is returned when a payload is not a feature collection at all.
// It is fatal to initialization.
var ErrMalformed = eris.New("geo: payload is not a feature collection")

// InvalidFeature describes one record rejected during a load
type InvalidFeature struct {
	Index  int
	Name   string
	Reason string
}

func (f InvalidFeature) Error() string {
	if f.Name == "" {
		return fmt.Sprintf("feature #%d: %s", f.Index, f.Reason)
	}
	return fmt.Sprintf("feature #%d (%s): %s", f.Index, f.Name, f.Reason)
}

// Record is one undecoded source record, common to every source format
type Record struct {
	Index      int
	Properties map[string]any
	Geometry   orb.Geometry
	Reject     string // set by a source that already knows the record is unusable
}

func (r Record) str(key string) string {
	s, _ := r.Properties[key].(string)
	return s
}

// Store holds the decoded features of one dataset
type Store struct {
	features []*Feature
	byID     map[FeatureID]*Feature
	Skipped  []InvalidFeature
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{byID: make(map[FeatureID]*Feature)}
}

// Build validates records and keeps the valid ones. Invalid records are
// collected into Store.Skipped and never abort the build.
func Build(records []Record) *Store {
	s := NewStore()
	log := zap.L().With(zap.String("component", "geo.store"))

	for _, rec := range records {
		f, reason := s.validate(rec)
		if reason != "" {
			skipped := InvalidFeature{Index: rec.Index, Name: rec.str("name"), Reason: reason}
			s.Skipped = append(s.Skipped, skipped)
			log.Warn("skipping feature",
				zap.Int("index", rec.Index),
				zap.String("name", skipped.Name),
				zap.String("reason", reason))
			continue
		}
		s.features = append(s.features, f)
		s.byID[f.ID] = f
	}

	log.Debug("store built",
		zap.Int("features", len(s.features)),
		zap.Int("skipped", len(s.Skipped)))
	return s
}

func (s *Store) validate(rec Record) (*Feature, string) {
	if rec.Reject != "" {
		return nil, rec.Reject
	}

	name := rec.str("name")
	if name == "" {
		return nil, "missing name"
	}
	rawCategory := rec.str("category")
	if rawCategory == "" {
		return nil, "missing category"
	}
	category, err := ParseCategory(rawCategory)
	if err != nil {
		return nil, fmt.Sprintf("unknown category %q", rawCategory)
	}
	if rec.Geometry == nil {
		return nil, "missing geometry type"
	}

	id := NewFeatureID(name)
	if id == "" {
		return nil, "name has no identifying characters"
	}
	if _, dup := s.byID[id]; dup {
		return nil, fmt.Sprintf("duplicate id %q", id)
	}

	return &Feature{
		ID:          id,
		Category:    category,
		Kind:        KindOf(rec.Geometry),
		Geometry:    rec.Geometry,
		Name:        name,
		Description: rec.str("description"),
		ImageURL:    rec.str("image"),
		Link:        rec.str("link"),
		Index:       rec.Index,
	}, ""
}

type collectionEnvelope struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

// Load decodes a GeoJSON FeatureCollection. Each feature is decoded on its
// own so that one bad record only skips that record.
func Load(raw []byte) (*Store, error) {
	var env collectionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, eris.Wrapf(ErrMalformed, "decode: %v", err)
	}
	if env.Type != "FeatureCollection" {
		return nil, eris.Wrapf(ErrMalformed, "type %q", env.Type)
	}

	records := make([]Record, 0, len(env.Features))
	for i, msg := range env.Features {
		f, err := geojson.UnmarshalFeature(msg)
		if err != nil {
			records = append(records, Record{
				Index:      i,
				Properties: peekProperties(msg),
				Reject:     fmt.Sprintf("decode: %v", err),
			})
			continue
		}
		records = append(records, Record{Index: i, Properties: f.Properties, Geometry: f.Geometry})
	}

	return Build(records), nil
}

// peekProperties recovers the properties of a feature whose geometry failed
// to decode, so the skip report can still name it.
func peekProperties(msg json.RawMessage) map[string]any {
	var partial struct {
		Properties map[string]any `json:"properties"`
	}
	_ = json.Unmarshal(msg, &partial)
	return partial.Properties
}

// Features returns the valid features in load order
func (s *Store) Features() []*Feature {
	out := make([]*Feature, len(s.features))
	copy(out, s.features)
	return out
}

// Get retrieves a feature by id
func (s *Store) Get(id FeatureID) (*Feature, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// Len returns the number of valid features
func (s *Store) Len() int {
	return len(s.features)
}
