package catalog

import "github.com/azulroute/tour-booking-api/internal/model"

func f(v float64) *float64 { return &v }

// StaticContents returns the translation-file defaults for the catalog.
// These are the lowest-precedence source in the merge: the site ships with
// them so that a fresh deployment has a browsable catalog before anything is
// authored in the back office. English is the base language; Spanish and
// French variants fall back to English field by field when absent.
func StaticContents() map[string]model.TourContent {
	return map[string]model.TourContent{
		"douro-valley-day-trip": {
			ID: "douro-valley-day-trip",
			Title: map[string]string{
				"en": "Douro Valley Day Trip",
				"es": "Excursión de un día al Valle del Duero",
				"fr": "Excursion d'une journée dans la vallée du Douro",
			},
			Subtitle: map[string]string{
				"en": "Terraced vineyards, river cruise and two wine tastings",
				"es": "Viñedos en terrazas, crucero fluvial y dos catas de vino",
				"fr": "Vignobles en terrasses, croisière et deux dégustations",
			},
			Description: map[string]string{
				"en": "A full day through the oldest demarcated wine region in the world. We drive the N-222 along the river, visit two family-run quintas and finish with a one-hour rabelo boat cruise in Pinhão.",
				"es": "Un día completo por la región vinícola demarcada más antigua del mundo, con visita a dos quintas familiares y un crucero en barco rabelo en Pinhão.",
				"fr": "Une journée complète dans la plus ancienne région viticole délimitée du monde, avec deux quintas familiales et une croisière en bateau rabelo à Pinhão.",
			},
			Highlights: map[string][]string{
				"en": {"UNESCO-listed vineyard terraces", "Two wine tastings with a producer", "Rabelo boat cruise in Pinhão", "Lunch in a traditional quinta"},
				"es": {"Terrazas de viñedos declaradas por la UNESCO", "Dos catas con productor", "Crucero en barco rabelo", "Almuerzo en una quinta tradicional"},
			},
			Itinerary: map[string][]string{
				"en": {"08:30 pickup in Porto", "10:00 first quinta visit and tasting", "13:00 lunch overlooking the river", "15:00 rabelo cruise", "18:30 return to Porto"},
			},
			Included: map[string][]string{
				"en": {"Hotel pickup and drop-off", "Lunch with drinks", "All tastings", "Boat cruise ticket"},
				"es": {"Recogida en el hotel", "Almuerzo con bebidas", "Todas las catas", "Billete del crucero"},
			},
			Excluded: map[string][]string{
				"en": {"Personal expenses", "Gratuities"},
			},
			MeetingPoint: map[string]string{
				"en": "Your Porto hotel lobby, or Praça da Liberdade by the statue",
				"fr": "Le hall de votre hôtel à Porto, ou Praça da Liberdade près de la statue",
			},
			Price:     f(145),
			Duration:  "10h",
			GroupSize: "1-8",
			Category:  "day-trip",
			Images:    []string{"/images/douro-1.jpg", "/images/douro-2.jpg"},
		},
		"porto-food-walk": {
			ID: "porto-food-walk",
			Title: map[string]string{
				"en": "Porto Food Walk",
				"es": "Ruta gastronómica por Oporto",
				"fr": "Balade gourmande à Porto",
			},
			Subtitle: map[string]string{
				"en": "Six stops, one francesinha, endless port wine",
			},
			Description: map[string]string{
				"en": "Three hours of eating our way from Bolhão market to the Ribeira: cured ham, fresh cheese, the city's best francesinha and a tawny port to close.",
			},
			Highlights: map[string][]string{
				"en": {"Bolhão market tasting", "Francesinha at a locals-only spot", "Port wine pairing"},
			},
			Included: map[string][]string{
				"en": {"All food and drink", "Local guide"},
			},
			MeetingPoint: map[string]string{
				"en": "Bolhão market main entrance",
			},
			// Fixed totals for the common group sizes; larger groups fall
			// back to the per-person base price.
			Price:        f(45),
			PricingTiers: map[int]float64{2: 80, 4: 150},
			Duration:     "3h",
			GroupSize:    "1-8",
			Category:     "food",
			Images:       []string{"/images/food-walk-1.jpg"},
		},
		"sintra-highlights": {
			ID: "sintra-highlights",
			Title: map[string]string{
				"en": "Sintra Highlights Private Tour",
				"es": "Tour privado por lo mejor de Sintra",
				"fr": "Visite privée des incontournables de Sintra",
			},
			Subtitle: map[string]string{
				"en": "Pena Palace, Quinta da Regaleira and the coast in one day",
			},
			Description: map[string]string{
				"en": "Skip-the-line entry to Pena Palace, the initiation well at Quinta da Regaleira, and a sunset stop at Cabo da Roca, the westernmost point of continental Europe.",
			},
			Highlights: map[string][]string{
				"en": {"Skip-the-line Pena Palace", "Quinta da Regaleira", "Cabo da Roca at sunset"},
			},
			Itinerary: map[string][]string{
				"en": {"09:00 pickup in Lisbon", "10:30 Pena Palace", "13:00 lunch in Sintra village", "15:00 Quinta da Regaleira", "18:00 Cabo da Roca", "19:30 return"},
			},
			Included: map[string][]string{
				"en": {"Private vehicle and driver-guide", "Skip-the-line tickets"},
			},
			Excluded: map[string][]string{
				"en": {"Lunch", "Personal expenses"},
			},
			MeetingPoint: map[string]string{
				"en": "Your Lisbon accommodation",
			},
			Price:     f(95),
			Duration:  "10h",
			GroupSize: "1-8",
			Category:  "private",
			Images:    []string{"/images/sintra-1.jpg", "/images/sintra-2.jpg"},
		},
	}
}
