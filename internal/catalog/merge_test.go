package catalog

import (
	"reflect"
	"testing"

	"github.com/azulroute/tour-booking-api/internal/model"
)

func TestMergePrecedenceCachedOverDBOverStatic(t *testing.T) {
	static := &model.TourContent{
		Title:       map[string]string{"en": "Static Title"},
		Description: map[string]string{"en": "Static description"},
		Duration:    "8h",
	}
	db := &model.TourContent{
		Title:    map[string]string{"en": "DB Title"},
		Duration: "9h",
	}
	cached := &model.TourContent{
		Title: map[string]string{"en": "Cached Title"},
	}

	got := Merge("t1", static, db, cached, "en", "en")

	if got.Title != "Cached Title" {
		t.Errorf("Title = %q, want cached value", got.Title)
	}
	if got.Description != "Static description" {
		t.Errorf("Description = %q, want static fallthrough", got.Description)
	}
	if got.Duration != "9h" {
		t.Errorf("Duration = %q, want db value over static", got.Duration)
	}
}

func TestMergeEmptyValuesFallThrough(t *testing.T) {
	static := &model.TourContent{
		Title:      map[string]string{"en": "Static Title"},
		Highlights: map[string][]string{"en": {"a", "b"}},
	}
	db := &model.TourContent{
		Title:      map[string]string{"en": ""},         // empty string is absent
		Highlights: map[string][]string{"en": {}},       // empty slice is absent
	}
	cached := &model.TourContent{}

	got := Merge("t1", static, db, cached, "en", "en")

	if got.Title != "Static Title" {
		t.Errorf("Title = %q, empty db value should fall through", got.Title)
	}
	if !reflect.DeepEqual(got.Highlights, []string{"a", "b"}) {
		t.Errorf("Highlights = %v, empty db slice should fall through", got.Highlights)
	}
}

func TestMergeIdempotentWhenSourcesEqual(t *testing.T) {
	staticAll := StaticContents()
	static := staticAll["douro-valley-day-trip"]
	dbCopy := static
	cachedCopy := static

	fromStaticOnly := Merge(static.ID, &static, nil, nil, "en", "en")
	fromAll := Merge(static.ID, &static, &dbCopy, &cachedCopy, "en", "en")

	if !reflect.DeepEqual(fromStaticOnly, fromAll) {
		t.Errorf("merging identical sources changed the result:\n%+v\nvs\n%+v", fromStaticOnly, fromAll)
	}
}

func TestMergePriceDBWinsEvenWhenZero(t *testing.T) {
	zero := 0.0
	static := &model.TourContent{Price: f(145)}
	db := &model.TourContent{Price: &zero}
	cached := &model.TourContent{Price: f(99)}

	got := Merge("t1", static, db, cached, "en", "en")
	if got.Price != 0 {
		t.Errorf("Price = %v, want db zero to win (no empty-skip for price)", got.Price)
	}
}

func TestMergePriceFallsThroughOnlyWhenAbsent(t *testing.T) {
	static := &model.TourContent{Price: f(145)}
	cached := &model.TourContent{Price: f(99)}

	// db carries no price at all: cached should win over static.
	got := Merge("t1", static, &model.TourContent{}, cached, "en", "en")
	if got.Price != 99 {
		t.Errorf("Price = %v, want cached 99", got.Price)
	}

	// no source carries a price: resolve to zero.
	got = Merge("t1", nil, nil, nil, "en", "en")
	if got.Price != 0 {
		t.Errorf("Price = %v, want 0 when absent everywhere", got.Price)
	}
}

func TestMergeTiersFollowPricePrecedence(t *testing.T) {
	static := &model.TourContent{PricingTiers: map[int]float64{2: 80}}
	db := &model.TourContent{PricingTiers: map[int]float64{2: 90}}

	got := Merge("t1", static, db, nil, "en", "en")
	if got.PricingTiers[2] != 90 {
		t.Errorf("PricingTiers = %v, want db table", got.PricingTiers)
	}
}

func TestMergeLocalizedFallbackToBaseLanguage(t *testing.T) {
	static := &model.TourContent{
		Title:       map[string]string{"en": "Base Title", "fr": "Titre"},
		Description: map[string]string{"en": "Base description"},
	}
	db := &model.TourContent{
		Description: map[string]string{"fr": "Description FR"},
	}

	got := Merge("t1", static, db, nil, "fr", "en")
	if got.Title != "Titre" {
		t.Errorf("Title = %q, want localized static value", got.Title)
	}
	if got.Description != "Description FR" {
		t.Errorf("Description = %q, want localized db value", got.Description)
	}

	// Spanish is absent everywhere: fall back to English per field.
	got = Merge("t1", static, db, nil, "es", "en")
	if got.Title != "Base Title" {
		t.Errorf("Title = %q, want base-language fallback", got.Title)
	}
	if got.Description != "Base description" {
		t.Errorf("Description = %q, want base-language fallback through all sources", got.Description)
	}
}

func TestMergeNilSources(t *testing.T) {
	got := Merge("ghost", nil, nil, nil, "en", "en")
	if got.ID != "ghost" || got.Title != "" || got.Price != 0 {
		t.Errorf("Merge with nil sources = %+v, want empty tour", got)
	}
}
