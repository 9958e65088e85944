// Package catalog resolves the effective tour record from three partial
// sources: the static translation defaults shipped with the site, the
// database row authored in the back office, and locally cached (unpublished)
// admin edits held in Redis. The merge itself is a pure function so the
// precedence rules can be tested in isolation.
package catalog

import (
	"github.com/azulroute/tour-booking-api/internal/model"
)

// Merge combines up to three partial views of one tour into a resolved Tour
// for the requested language. Any of the source pointers may be nil.
//
// Field precedence is cached > db > static, where an empty string or empty
// slice counts as absent and falls through to the next source. Localized
// fields resolve the requested language through all three sources first and
// only then fall back to the base language, again through all three.
//
// Price (and the tier table) is special-cased: db > cached > static with no
// empty-value fallthrough, because 0 is a legitimate-looking but wrong value
// that must not be silently replaced by the next source. A source "has no
// price" only when its Price pointer is nil.
func Merge(id string, static, db, cached *model.TourContent, lang, baseLang string) model.Tour {
	if static == nil {
		static = &model.TourContent{}
	}
	if db == nil {
		db = &model.TourContent{}
	}
	if cached == nil {
		cached = &model.TourContent{}
	}

	t := model.Tour{ID: id, Lang: lang}

	t.Title = pickText(lang, baseLang, cached.Title, db.Title, static.Title)
	t.Subtitle = pickText(lang, baseLang, cached.Subtitle, db.Subtitle, static.Subtitle)
	t.Description = pickText(lang, baseLang, cached.Description, db.Description, static.Description)
	t.MeetingPoint = pickText(lang, baseLang, cached.MeetingPoint, db.MeetingPoint, static.MeetingPoint)
	t.Highlights = pickList(lang, baseLang, cached.Highlights, db.Highlights, static.Highlights)
	t.Itinerary = pickList(lang, baseLang, cached.Itinerary, db.Itinerary, static.Itinerary)
	t.Included = pickList(lang, baseLang, cached.Included, db.Included, static.Included)
	t.Excluded = pickList(lang, baseLang, cached.Excluded, db.Excluded, static.Excluded)

	t.Duration = firstString(cached.Duration, db.Duration, static.Duration)
	t.GroupSize = firstString(cached.GroupSize, db.GroupSize, static.GroupSize)
	t.Category = firstString(cached.Category, db.Category, static.Category)
	t.Images = firstSlice(cached.Images, db.Images, static.Images)

	// Price precedence deliberately differs from the text fields.
	t.Price = pickPrice(db.Price, cached.Price, static.Price)
	t.PricingTiers = pickTiers(db.PricingTiers, cached.PricingTiers, static.PricingTiers)

	return t
}

// pickText resolves a localized text field. The sources are ordered by
// precedence (highest first).
func pickText(lang, baseLang string, sources ...map[string]string) string {
	for _, m := range sources {
		if v := m[lang]; v != "" {
			return v
		}
	}
	if lang == baseLang {
		return ""
	}
	for _, m := range sources {
		if v := m[baseLang]; v != "" {
			return v
		}
	}
	return ""
}

// pickList resolves a localized list field with the same precedence and
// base-language fallback as pickText.
func pickList(lang, baseLang string, sources ...map[string][]string) []string {
	for _, m := range sources {
		if v := m[lang]; len(v) > 0 {
			return v
		}
	}
	if lang == baseLang {
		return nil
	}
	for _, m := range sources {
		if v := m[baseLang]; len(v) > 0 {
			return v
		}
	}
	return nil
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstSlice(vals ...[]string) []string {
	for _, v := range vals {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}

func pickPrice(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

func pickTiers(vals ...map[int]float64) map[int]float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
