package model

// NumTiers is the number of point values per category
const NumTiers = 5

// TierStep is the point difference between adjacent tiers
const TierStep = 200

// ChoicesPerQuestion is the number of multiple-choice options shown
const ChoicesPerQuestion = 4

// Tier is a board row index, 0..4 for values 200..1000
type Tier int

// Values returns all point values in tier order
func Values() []int {
	return []int{200, 400, 600, 800, 1000}
}

// TierForValue maps a point value to its tier.
// Only the five fixed values are accepted.
func TierForValue(value int) (Tier, error) {
	if value <= 0 || value%TierStep != 0 || value/TierStep > NumTiers {
		return 0, ErrInvalidValue
	}
	return Tier(value/TierStep - 1), nil
}

// Valid returns true if the tier is on the board
func (t Tier) Valid() bool {
	return t >= 0 && int(t) < NumTiers
}

// Value returns the point value for the tier
func (t Tier) Value() int {
	return (int(t) + 1) * TierStep
}

// Question is a single multiple-choice clue
type Question struct {
	Category      Category `json:"category" yaml:"category"`
	Value         int      `json:"value" yaml:"value"`
	Prompt        string   `json:"prompt" yaml:"prompt"`
	CorrectAnswer string   `json:"correct_answer" yaml:"answer"`
	Choices       []string `json:"choices" yaml:"choices"`
}

// IsCorrect returns true if the choice at index is the correct answer
func (q Question) IsCorrect(choice int) bool {
	if choice < 0 || choice >= len(q.Choices) {
		return false
	}
	return q.Choices[choice] == q.CorrectAnswer
}

// CorrectIndex returns the index of the correct answer in Choices, or -1
func (q Question) CorrectIndex() int {
	for i, c := range q.Choices {
		if c == q.CorrectAnswer {
			return i
		}
	}
	return -1
}
