package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PlayerSuite struct {
	suite.Suite
}

func TestPlayerSuite(t *testing.T) {
	suite.Run(t, new(PlayerSuite))
}

func (s *PlayerSuite) TestNewPlayerTrimsName() {
	p, err := NewPlayer("  Ann ")
	s.Require().NoError(err)
	s.Equal("Ann", p.Name)
	s.Equal(0, p.Score)
}

func (s *PlayerSuite) TestNewPlayerRejectsBlankName() {
	_, err := NewPlayer("   ")
	s.ErrorIs(err, ErrInvalidName)
}

func (s *PlayerSuite) TestAddPoints() {
	p, _ := NewPlayer("Ann")
	p.AddPoints(400)
	p.AddPoints(0)
	s.Equal(400, p.Score)
}

func (s *PlayerSuite) TestRosterKeepsOrder() {
	r, err := NewRoster([]string{"Ann", "Ben", "Cy"})
	s.Require().NoError(err)
	s.Equal(3, r.Len())
	s.Equal([]string{"Ann", "Ben", "Cy"}, r.Names())
}

func (s *PlayerSuite) TestRosterRejectsDuplicates() {
	_, err := NewRoster([]string{"Ann", "ann "})
	s.ErrorIs(err, ErrDuplicateName)
}

func (s *PlayerSuite) TestRosterRejectsEmpty() {
	_, err := NewRoster(nil)
	s.ErrorIs(err, ErrInsufficientPlayers)
}

func (s *PlayerSuite) TestRosterCloneIsDeep() {
	r, _ := NewRoster([]string{"Ann"})
	clone := r.Clone()
	r.At(0).AddPoints(200)
	s.Equal(0, clone.At(0).Score)
}

func (s *PlayerSuite) TestResetScores() {
	r, _ := NewRoster([]string{"Ann", "Ben"})
	r.At(0).AddPoints(200)
	r.At(1).AddPoints(600)
	r.ResetScores()
	s.Equal([]Player{{Name: "Ann"}, {Name: "Ben"}}, r.Players())
}
