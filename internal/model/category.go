package model

import "strings"

// Category is one of the fixed question categories on the board
type Category int

const (
	CategoryScience Category = iota
	CategoryHistory
	CategorySports
	CategoryMovies
	CategoryGeography
)

// NumCategories is the number of board columns
const NumCategories = 5

var categoryTags = [NumCategories]string{"science", "history", "sports", "movies", "geography"}
var categoryLabels = [NumCategories]string{"Science", "History", "Sports", "Movies", "Geography"}

// Categories returns all categories in board order
func Categories() []Category {
	return []Category{CategoryScience, CategoryHistory, CategorySports, CategoryMovies, CategoryGeography}
}

// Valid returns true if the category is one of the known categories
func (c Category) Valid() bool {
	return c >= 0 && int(c) < NumCategories
}

// Tag returns the stable internal identifier
func (c Category) Tag() string {
	if !c.Valid() {
		return ""
	}
	return categoryTags[c]
}

// Label returns the human-readable name
func (c Category) Label() string {
	if !c.Valid() {
		return ""
	}
	return categoryLabels[c]
}

func (c Category) String() string {
	return c.Label()
}

// ParseCategory looks up a category by tag or display label, case-insensitively
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for i := 0; i < NumCategories; i++ {
		if strings.EqualFold(name, categoryTags[i]) || strings.EqualFold(name, categoryLabels[i]) {
			return Category(i), nil
		}
	}
	return 0, ErrUnknownCategory
}

// MarshalText encodes the category as its tag
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, ErrUnknownCategory
	}
	return []byte(c.Tag()), nil
}

// UnmarshalText accepts a tag or display label
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
