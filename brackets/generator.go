package brackets

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Dosada05/league-api/models"
)

const FirstRoundLabel = "Round 1"

var (
	ErrNotEnoughTeams = errors.New("at least 2 teams are required to generate a bracket")
	ErrDuplicateTeam  = errors.New("team appears more than once in the bracket input")
)

type GenerateBracketParams struct {
	TournamentID string
	Teams        []*models.Team
}

// BracketMatch описывает пару команд первого раунда до сохранения в БД.
type BracketMatch struct {
	Round        string
	OrderInRound int
	Team1ID      string
	Team2ID      string
	CourtNumber  string
}

type Bracket struct {
	Matches []*BracketMatch
	// ByeTeamID задан при нечётном числе команд: эта команда не играет в первом раунде.
	ByeTeamID *string
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (*Bracket, error)

	GetName() string
}

// ShuffleFunc has the signature of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

type FirstRoundGenerator struct {
	shuffle ShuffleFunc
}

// NewFirstRoundGenerator returns a generator that shuffles with Fisher–Yates.
// A nil shuffle uses the global math/rand/v2 source.
func NewFirstRoundGenerator(shuffle ShuffleFunc) BracketGenerator {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	return &FirstRoundGenerator{shuffle: shuffle}
}

func (g *FirstRoundGenerator) GetName() string {
	return "FirstRound"
}

func (g *FirstRoundGenerator) GenerateBracket(_ context.Context, params GenerateBracketParams) (*Bracket, error) {
	n := len(params.Teams)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughTeams, n)
	}

	seen := make(map[string]struct{}, n)
	order := make([]string, 0, n)
	for _, team := range params.Teams {
		if team == nil {
			return nil, errors.New("nil team in bracket input")
		}
		if _, dup := seen[team.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTeam, team.ID)
		}
		seen[team.ID] = struct{}{}
		order = append(order, team.ID)
	}

	g.shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	bracket := &Bracket{Matches: make([]*BracketMatch, 0, n/2)}
	for i := 0; i+1 < n; i += 2 {
		pos := i/2 + 1
		bracket.Matches = append(bracket.Matches, &BracketMatch{
			Round:        FirstRoundLabel,
			OrderInRound: pos,
			Team1ID:      order[i],
			Team2ID:      order[i+1],
			CourtNumber:  fmt.Sprintf("Court %d", pos),
		})
	}
	if n%2 == 1 {
		bye := order[n-1]
		bracket.ByeTeamID = &bye
	}

	return bracket, nil
}
