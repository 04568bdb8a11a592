package random

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type RandomSuite struct {
	suite.Suite
	random *CryptoRandom
}

func TestRandomSuite(t *testing.T) {
	suite.Run(t, new(RandomSuite))
}

func (s *RandomSuite) SetupTest() {
	s.random = New()
}

func (s *RandomSuite) TestIntnInRange() {
	for i := 0; i < 100; i++ {
		n := s.random.Intn(3)
		s.GreaterOrEqual(n, 0)
		s.Less(n, 3)
	}
	s.Equal(0, s.random.Intn(0))
}

func (s *RandomSuite) TestUUIDIsUnique() {
	a := s.random.UUID()
	b := s.random.UUID()
	s.NotEqual(a, b)
	_, err := uuid.Parse(a)
	s.NoError(err)
}
