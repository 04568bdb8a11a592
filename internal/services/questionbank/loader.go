package questionbank

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/jeopardy-go2/internal/model"
)

// ErrInvalidQuestion is returned when a question file contains a bad entry
var ErrInvalidQuestion = errors.New("invalid question")

//go:embed questions.yaml
var defaultQuestions []byte

type questionFile struct {
	Questions []rawQuestion `yaml:"questions"`
}

type rawQuestion struct {
	Category string   `yaml:"category"`
	Value    int      `yaml:"value"`
	Prompt   string   `yaml:"prompt"`
	Answer   string   `yaml:"answer"`
	Choices  []string `yaml:"choices"`
}

// DefaultTable returns the built-in question set
func DefaultTable() (*Table, error) {
	return LoadTable(strings.NewReader(string(defaultQuestions)))
}

// LoadTableFile reads a YAML question file from disk
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question file: %w", err)
	}
	defer f.Close()
	return LoadTable(f)
}

// LoadTable parses and validates a YAML question set
func LoadTable(r io.Reader) (*Table, error) {
	var file questionFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode question file: %w", err)
	}

	questions := make([]model.Question, 0, len(file.Questions))
	for i, raw := range file.Questions {
		q, err := raw.toQuestion()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidQuestion, i+1, err)
		}
		questions = append(questions, q)
	}
	return NewTable(questions), nil
}

func (r rawQuestion) toQuestion() (model.Question, error) {
	category, err := model.ParseCategory(r.Category)
	if err != nil {
		return model.Question{}, fmt.Errorf("category %q: %w", r.Category, err)
	}
	if _, err := model.TierForValue(r.Value); err != nil {
		return model.Question{}, fmt.Errorf("value %d: %w", r.Value, err)
	}
	if strings.TrimSpace(r.Prompt) == "" {
		return model.Question{}, errors.New("prompt is empty")
	}
	if len(r.Choices) != model.ChoicesPerQuestion {
		return model.Question{}, fmt.Errorf("expected %d choices, got %d", model.ChoicesPerQuestion, len(r.Choices))
	}

	q := model.Question{
		Category:      category,
		Value:         r.Value,
		Prompt:        r.Prompt,
		CorrectAnswer: r.Answer,
		Choices:       append([]string(nil), r.Choices...),
	}
	if q.CorrectIndex() < 0 {
		return model.Question{}, fmt.Errorf("answer %q is not one of the choices", r.Answer)
	}
	return q, nil
}
