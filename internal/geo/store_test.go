package geo

import (
	"os"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *Store {
	t.Helper()
	raw, err := os.ReadFile("testdata/campus.geojson")
	require.NoError(t, err)
	store, err := Load(raw)
	require.NoError(t, err)
	return store
}

func TestLoadKeepsValidFeatures(t *testing.T) {
	store := loadFixture(t)

	require.Equal(t, 4, store.Len())

	dining, ok := store.Get("class-of-1953-commons")
	require.True(t, ok)
	assert.Equal(t, CategoryDining, dining.Category)
	assert.Equal(t, KindPolygon, dining.Kind)
	assert.Equal(t, "Main dining hall.", dining.Description)
	assert.Equal(t, "https://example.edu/img/foco.jpg", dining.ImageURL)
	assert.Equal(t, "https://example.edu/dining/foco", dining.Link)

	library, ok := store.Get("baker-berry-library")
	require.True(t, ok)
	assert.Equal(t, KindPoint, library.Kind)
	assert.Empty(t, library.Link)

	collis, ok := store.Get("collis-center")
	require.True(t, ok)
	assert.Equal(t, CategoryStudentLife, collis.Category)

	// LineString decodes fine; layer assignment drops it later.
	mall, ok := store.Get("tuck-mall")
	require.True(t, ok)
	assert.Equal(t, KindUnsupported, mall.Kind)
}

func TestLoadSkipsInvalidFeatures(t *testing.T) {
	store := loadFixture(t)

	require.Len(t, store.Skipped, 4)

	reasons := make(map[int]string)
	for _, s := range store.Skipped {
		reasons[s.Index] = s.Reason
	}
	assert.Equal(t, `unknown category "parking"`, reasons[4])
	assert.Equal(t, "missing name", reasons[5])
	assert.True(t, strings.HasPrefix(reasons[6], "decode:"), reasons[6])
	assert.Equal(t, `duplicate id "baker-berry-library"`, reasons[7])

	for _, s := range store.Skipped {
		if s.Index == 6 {
			assert.Equal(t, "The Lodge", s.Name)
			assert.Contains(t, s.Error(), "The Lodge")
		}
	}
}

func TestLoadPreservesOrder(t *testing.T) {
	store := loadFixture(t)

	var names []string
	for _, f := range store.Features() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Class of 1953 Commons", "Baker-Berry Library", "Collis Center", "Tuck Mall"}, names)
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "<html>"},
		{name: "single feature", raw: `{"type":"Feature","properties":{},"geometry":null}`},
		{name: "array", raw: `[1,2,3]`},
		{name: "empty object", raw: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Load([]byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, store)
			assert.True(t, eris.Is(err, ErrMalformed))
		})
	}
}

func TestLoadEmptyCollection(t *testing.T) {
	store, err := Load([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Skipped)
}

func TestLoadMissingGeometry(t *testing.T) {
	store, err := Load([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"Nowhere","category":"dining"},"geometry":null}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	require.Len(t, store.Skipped, 1)
	assert.Equal(t, "missing geometry type", store.Skipped[0].Reason)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw      string
		expected Category
		wantErr  bool
	}{
		{raw: "dining", expected: CategoryDining},
		{raw: "Residential", expected: CategoryResidential},
		{raw: "libraries", expected: CategoryLibraries},
		{raw: "academic", expected: CategoryAcademic},
		{raw: "student life", expected: CategoryStudentLife},
		{raw: "student_life", expected: CategoryStudentLife},
		{raw: "student-life", expected: CategoryStudentLife},
		{raw: "athletics", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCategory(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewFeatureID(t *testing.T) {
	assert.Equal(t, FeatureID("baker-berry-library"), NewFeatureID("Baker-Berry Library"))
	assert.Equal(t, FeatureID("class-of-1953-commons"), NewFeatureID("  Class of 1953 Commons "))
	assert.Equal(t, FeatureID("hopkins-center-for-the-arts"), NewFeatureID("Hopkins Center (for the Arts)"))
	assert.Equal(t, FeatureID(""), NewFeatureID("---"))
}

func TestFeatureAnchor(t *testing.T) {
	store := loadFixture(t)

	dining, _ := store.Get("class-of-1953-commons")
	anchor := dining.Anchor()
	assert.InDelta(t, 43.7024, anchor.Lat, 1e-5)
	assert.InDelta(t, -72.2905, anchor.Lon, 1e-5)

	library, _ := store.Get("baker-berry-library")
	assert.Equal(t, LatLon{Lat: 43.7056, Lon: -72.2886}, library.Anchor())

	degenerate := &Feature{Kind: KindPolygon, Geometry: orb.Polygon{{{1, 1}, {1, 1}, {1, 1}}}}
	assert.Equal(t, LatLon{Lat: 1, Lon: 1}, degenerate.Anchor())
}

func TestFeatureContains(t *testing.T) {
	store := loadFixture(t)

	dining, _ := store.Get("class-of-1953-commons")
	assert.True(t, dining.Contains(LatLon{Lat: 43.7024, Lon: -72.2905}))
	assert.False(t, dining.Contains(LatLon{Lat: 43.7030, Lon: -72.2905}))

	library, _ := store.Get("baker-berry-library")
	assert.False(t, library.Contains(library.Anchor()))
}
