// Package classifier suggests a spending category for free-text transaction
// descriptions using keyword matching.
package classifier

import "strings"

// FallbackCategory is returned when no keyword matches.
const FallbackCategory = "Other"

// rule maps one category to its trigger keywords (lowercase).
type rule struct {
	category string
	keywords []string
}

// rules is scanned in order and the first match wins; the order is a fixed
// priority, not a scoring system.
var rules = []rule{
	{"Food & Dining", []string{
		"restaurant", "coffee", "cafe", "starbucks", "mcdonald", "pizza",
		"burger", "sushi", "doordash", "grubhub", "dinner", "lunch",
		"breakfast", "takeout", "bar", "pub", "bakery", "deli",
	}},
	{"Groceries", []string{
		"grocery", "groceries", "supermarket", "walmart", "costco", "aldi",
		"trader joe", "whole foods", "safeway", "kroger", "market",
	}},
	{"Transportation", []string{
		"uber", "lyft", "gas", "fuel", "parking", "taxi", "bus", "train",
		"metro", "transit", "toll", "car wash",
	}},
	{"Shopping", []string{
		"amazon", "target", "mall", "clothing", "clothes", "shoes",
		"electronics", "best buy", "store", "ikea",
	}},
	{"Entertainment", []string{
		"netflix", "spotify", "hulu", "movie", "cinema", "theater",
		"concert", "game", "steam", "disney", "twitch",
	}},
	{"Bills & Utilities", []string{
		"electric", "electricity", "water bill", "internet", "phone",
		"utility", "utilities", "cable", "rent", "mortgage", "insurance",
		"bill",
	}},
	{"Healthcare", []string{
		"doctor", "pharmacy", "hospital", "dental", "dentist", "medical",
		"clinic", "cvs", "walgreens", "therapy",
	}},
	{"Travel", []string{
		"hotel", "flight", "airline", "airbnb", "vacation", "booking",
		"expedia", "cruise", "resort",
	}},
	{"Education", []string{
		"tuition", "course", "udemy", "coursera", "textbook", "school",
		"university", "college",
	}},
	{"Personal Care", []string{
		"salon", "haircut", "barber", "spa", "gym", "fitness", "yoga",
		"cosmetics",
	}},
}

// SuggestCategory returns the highest-priority category whose keyword list
// has a substring match anywhere in the description, or FallbackCategory.
// Deterministic: identical input always yields identical output.
func SuggestCategory(description string) string {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return FallbackCategory
	}

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(desc, kw) {
				return r.category
			}
		}
	}
	return FallbackCategory
}

// Categories returns the classifier's category names in priority order.
func Categories() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.category
	}
	return out
}
