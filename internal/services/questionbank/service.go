package questionbank

import (
	"github.com/mcoot/jeopardy-go2/internal/dependencies/random"
	"github.com/mcoot/jeopardy-go2/internal/model"
)

// Fallback question content, served for any cell with no entries
const (
	fallbackPrompt = "What is the capital of France?"
	fallbackAnswer = "Paris"
)

var fallbackChoices = []string{"London", "Berlin", "Paris", "Rome"}

// Table is an immutable set of questions keyed by board cell
type Table struct {
	byCell map[model.Cell][]model.Question
	total  int
}

// NewTable indexes questions by cell. Entries with an unknown category or
// value are skipped.
func NewTable(questions []model.Question) *Table {
	t := &Table{byCell: make(map[model.Cell][]model.Question)}
	for _, q := range questions {
		cell, err := model.CellFor(q.Category, q.Value)
		if err != nil {
			continue
		}
		q.Choices = append([]string(nil), q.Choices...)
		t.byCell[cell] = append(t.byCell[cell], q)
		t.total++
	}
	return t
}

// Len returns the total number of questions in the table
func (t *Table) Len() int {
	return t.total
}

// Service picks questions for board cells
type Service struct {
	table  *Table
	random random.Random
}

// New creates a question bank over a table
func New(table *Table, random random.Random) *Service {
	if table == nil {
		table = NewTable(nil)
	}
	return &Service{
		table:  table,
		random: random,
	}
}

// Question returns a uniformly random question for the cell, or the fallback
// question when the cell has none. It never fails.
func (s *Service) Question(category model.Category, value int) model.Question {
	candidates := s.candidates(category, value)
	if len(candidates) == 0 {
		return Fallback(value)
	}
	q := candidates[s.random.Intn(len(candidates))]
	q.Choices = append([]string(nil), q.Choices...)
	return q
}

// All returns a copy of every question for the cell
func (s *Service) All(category model.Category, value int) []model.Question {
	candidates := s.candidates(category, value)
	result := make([]model.Question, len(candidates))
	for i, q := range candidates {
		q.Choices = append([]string(nil), q.Choices...)
		result[i] = q
	}
	return result
}

// Count returns the number of questions for the cell
func (s *Service) Count(category model.Category, value int) int {
	return len(s.candidates(category, value))
}

// Total returns the number of questions in the bank
func (s *Service) Total() int {
	return s.table.Len()
}

func (s *Service) candidates(category model.Category, value int) []model.Question {
	cell, err := model.CellFor(category, value)
	if err != nil {
		return nil
	}
	return s.table.byCell[cell]
}

// Fallback returns the question served when a cell has no entries
func Fallback(value int) model.Question {
	return model.Question{
		Category:      model.CategoryGeography,
		Value:         value,
		Prompt:        fallbackPrompt,
		CorrectAnswer: fallbackAnswer,
		Choices:       append([]string(nil), fallbackChoices...),
	}
}

// ServiceInterface is the lookup used by the turn engine
type ServiceInterface interface {
	Question(category model.Category, value int) model.Question
	All(category model.Category, value int) []model.Question
	Count(category model.Category, value int) int
}

var _ ServiceInterface = (*Service)(nil)
