package post

import "strings"

// Category is a plain string so values travel through pgx and JSON without
// conversion.
type Category = string

const (
	CategoryTraffic   Category = "TRAFFIC"
	CategorySafety    Category = "SAFETY"
	CategoryDeals     Category = "DEALS"
	CategoryAmenities Category = "AMENITIES"
	CategoryGeneral   Category = "GENERAL"
)

type CategorySource = string

const (
	SourceAuto   CategorySource = "AUTO"
	SourceManual CategorySource = "MANUAL"
)

// categoryKeywords is checked in declared order; the first category with a
// matching keyword wins. Matches are plain substring checks on the lowercased
// content, so a keyword inside another word still counts.
var categoryKeywords = []struct {
	Category Category
	Keywords []string
}{
	{CategoryTraffic, []string{"jam", "congestion", "accident", "road closed", "delay", "traffic"}},
	{CategorySafety, []string{"danger", "unsafe", "avoid", "warning", "attacked", "robbery", "scam"}},
	{CategoryDeals, []string{"discount", "offer", "sale", "free", "cheap", "promo", "deal"}},
	{CategoryAmenities, []string{"toilet", "restaurant", "parking", "rest stop", "fuel", "petrol", "food"}},
}

// Detect classifies free-text content into a category. Content matching no
// keyword, including the empty string, is GENERAL.
func Detect(content string) Category {
	lower := strings.ToLower(content)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				return entry.Category
			}
		}
	}
	return CategoryGeneral
}

// ValidCategory reports whether v names one of the five fixed categories.
func ValidCategory(v Category) bool {
	switch v {
	case CategoryTraffic, CategorySafety, CategoryDeals, CategoryAmenities, CategoryGeneral:
		return true
	}
	return false
}

// FilterByCategory returns the subsequence of posts whose category equals the
// selection, preserving order. An empty or "ALL" selection passes everything
// through.
func FilterByCategory(posts []Post, category string) []Post {
	if category == "" || category == "ALL" {
		return posts
	}
	filtered := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Category == Category(category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
