package sister

import "strings"

// Sister captures the personalized page content for one person.
type Sister struct {
	Name     string   `json:"name"`
	Greeting string   `json:"greeting"`
	Message  string   `json:"message"`
	Images   []string `json:"images,omitempty"`
}

// NormalizeName lowercases and trims a name. The normalized form is the sole
// equality key for lookups; raw names in the roster may differ in case or
// surrounding whitespace.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Seed provides a small default roster for development when no data source
// is configured.
func Seed() []Sister {
	return []Sister{
		{
			Name:     "Avery",
			Greeting: "Welcome home, Avie!",
			Message:  "We are so glad you found your way here.\nYour big has been waiting all semester to spoil you.",
			Images: []string{
				"https://static.sistergreet.example/avery/reveal.jpg",
				"https://static.sistergreet.example/avery/bid-day.jpg",
			},
		},
		{
			Name:     "Jordan",
			Greeting: "Surprise, Jordan!",
			Message:  "Every letter on this page was picked out just for you.",
			Images: []string{
				"https://static.sistergreet.example/jordan/retreat.jpg",
			},
		},
		{
			Name:     "Sam",
			Greeting: "Hey Sam!",
			Message:  "Short, sweet, and all yours. Welcome to the family.",
		},
	}
}
