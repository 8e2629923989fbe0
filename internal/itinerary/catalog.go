package itinerary

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category groups activities that the generator balances against each other.
type Category string

const (
	CategoryStudy   Category = "study"
	CategoryFood    Category = "food"
	CategoryCulture Category = "culture"
	CategoryHidden  Category = "hidden"
)

// Categories lists the fixed categories in generation order.
var Categories = []Category{CategoryStudy, CategoryFood, CategoryCulture, CategoryHidden}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Label is the human heading for the category.
func (c Category) Label() string {
	switch c {
	case CategoryStudy:
		return "Study Sessions"
	case CategoryFood:
		return "Food"
	case CategoryCulture:
		return "Cultural Experiences"
	case CategoryHidden:
		return "Hidden Gems"
	default:
		return string(c)
	}
}

// Activity is a single catalog entry. Time is either one instant or a range.
type Activity struct {
	Icon     string   `yaml:"icon,omitempty"`
	Place    string   `yaml:"place"`
	Time     string   `yaml:"time"`
	Kind     string   `yaml:"kind"`
	Location string   `yaml:"location"`
	Category Category `yaml:"-"`
}

// Span parses the activity's time string.
func (a Activity) Span() (Span, error) {
	return ParseSpan(a.Time)
}

// Validate checks the time string and rejects text that would break the
// one-line plan format: "|" separates fields, " #" starts the category tag.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Place) == "" {
		return fmt.Errorf("%w: place is empty", ErrInvalidActivity)
	}
	for _, field := range []struct{ name, value string }{
		{"place", a.Place},
		{"kind", a.Kind},
		{"location", a.Location},
		{"icon", a.Icon},
	} {
		if strings.ContainsAny(field.value, "|\r\n") || strings.Contains(field.value, " #") {
			return fmt.Errorf("%w: %s %q contains a reserved character", ErrInvalidActivity, field.name, field.value)
		}
	}
	if _, err := a.Span(); err != nil {
		return err
	}
	return nil
}

// Catalog holds the activity pool for each category.
type Catalog map[Category][]Activity

// Activities returns the pool for a category in catalog order.
func (c Catalog) Activities(category Category) []Activity {
	return c[category]
}

// ReadCatalog decodes a YAML catalog keyed by category name and validates
// every entry with Activity.Validate.
func ReadCatalog(r io.Reader) (Catalog, error) {
	raw := map[Category][]Activity{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	catalog := make(Catalog, len(raw))
	for category, activities := range raw {
		if !category.Valid() {
			return nil, fmt.Errorf("%w %q", ErrUnknownCategory, category)
		}
		pool := make([]Activity, 0, len(activities))
		for _, activity := range activities {
			if err := activity.Validate(); err != nil {
				return nil, fmt.Errorf("catalog %s %q: %w", category, activity.Place, err)
			}
			activity.Category = category
			pool = append(pool, activity)
		}
		catalog[category] = pool
	}
	return catalog, nil
}

// DefaultCatalog returns the built-in New York activity lists.
func DefaultCatalog() Catalog {
	catalog := Catalog{
		CategoryStudy: {
			{Icon: "📚", Place: "NYPL Rose Reading Room", Time: "9:00 AM - 12:00 PM", Kind: "Deep Work", Location: "5th Ave & 42nd St"},
			{Icon: "☕", Place: "Think Coffee Study Session", Time: "2:00 PM - 5:00 PM", Kind: "Focus Time", Location: "Multiple Locations"},
			{Icon: "🏛️", Place: "Columbia Butler Library", Time: "10:00 AM - 1:00 PM", Kind: "Quiet Study", Location: "Morningside Heights"},
			{Icon: "🎓", Place: "Brooklyn Public Library", Time: "1:00 PM - 4:00 PM", Kind: "Group Study", Location: "Grand Army Plaza"},
		},
		CategoryCulture: {
			{Icon: "🎨", Place: "MoMA Free Friday", Time: "5:30 PM - 9:00 PM", Kind: "Art", Location: "Midtown"},
			{Icon: "🗽", Place: "Brooklyn Bridge Walk", Time: "6:00 PM - 7:30 PM", Kind: "Iconic", Location: "Brooklyn Bridge"},
			{Icon: "🎭", Place: "Broadway Rush Tickets", Time: "7:00 PM", Kind: "Theatre", Location: "Times Square"},
			{Icon: "🌆", Place: "High Line Sunset Stroll", Time: "5:00 PM - 6:30 PM", Kind: "Views", Location: "Chelsea"},
			{Icon: "📸", Place: "DUMBO Photo Spots", Time: "4:00 PM - 5:30 PM", Kind: "Photography", Location: "Brooklyn"},
		},
		CategoryFood: {
			{Icon: "🍕", Place: "Joe's Pizza Slice", Time: "12:30 PM", Kind: "Quick Bite", Location: "Greenwich Village"},
			{Icon: "🥯", Place: "Ess-a-Bagel", Time: "8:00 AM", Kind: "Breakfast", Location: "Midtown East"},
			{Icon: "🍜", Place: "Xi'an Famous Foods", Time: "1:00 PM", Kind: "Lunch", Location: "Multiple Locations"},
			{Icon: "🌮", Place: "Los Tacos No. 1", Time: "6:00 PM", Kind: "Dinner", Location: "Chelsea Market"},
		},
		CategoryHidden: {
			{Icon: "🌿", Place: "Elevated Acre Secret Garden", Time: "3:00 PM", Kind: "Hidden Gem", Location: "Financial District"},
			{Icon: "🎵", Place: "Washington Square Musicians", Time: "4:00 PM", Kind: "Local Scene", Location: "Greenwich Village"},
			{Icon: "🏛️", Place: "The Cloisters", Time: "11:00 AM - 2:00 PM", Kind: "Museums", Location: "Fort Tryon Park"},
			{Icon: "📚", Place: "Strand Bookstore Browse", Time: "2:00 PM", Kind: "Culture", Location: "Union Square"},
		},
	}
	for category, pool := range catalog {
		for i := range pool {
			pool[i].Category = category
		}
	}
	return catalog
}
