package model

import "strings"

// Player is a named participant in a match
type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// NewPlayer creates a player with a zero score
func NewPlayer(name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Player{Name: name}, nil
}

// AddPoints applies a signed point delta
func (p *Player) AddPoints(delta int) {
	p.Score += delta
}

// Roster is the ordered list of players in a match
type Roster struct {
	players []*Player
}

// NewRoster creates a roster from player names, in order.
// Names must be non-empty and unique.
func NewRoster(names []string) (*Roster, error) {
	if len(names) == 0 {
		return nil, ErrInsufficientPlayers
	}
	seen := make(map[string]bool, len(names))
	r := &Roster{players: make([]*Player, 0, len(names))}
	for _, name := range names {
		p, err := NewPlayer(name)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return nil, ErrDuplicateName
		}
		seen[key] = true
		r.players = append(r.players, p)
	}
	return r, nil
}

// RosterOf wraps already-validated players without copying them
func RosterOf(players []*Player) *Roster {
	return &Roster{players: players}
}

// Len returns the number of players
func (r *Roster) Len() int {
	return len(r.players)
}

// At returns the player at index i
func (r *Roster) At(i int) *Player {
	return r.players[i]
}

// Names returns player names in order
func (r *Roster) Names() []string {
	names := make([]string, len(r.players))
	for i, p := range r.players {
		names[i] = p.Name
	}
	return names
}

// Players returns copies of all players in order
func (r *Roster) Players() []Player {
	result := make([]Player, len(r.players))
	for i, p := range r.players {
		result[i] = *p
	}
	return result
}

// Clone returns a deep copy
func (r *Roster) Clone() *Roster {
	c := &Roster{players: make([]*Player, len(r.players))}
	for i, p := range r.players {
		cp := *p
		c.players[i] = &cp
	}
	return c
}

// ResetScores sets every score back to zero
func (r *Roster) ResetScores() {
	for _, p := range r.players {
		p.Score = 0
	}
}
