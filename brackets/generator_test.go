package brackets

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/Dosada05/league-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTeams(n int) []*models.Team {
	teams := make([]*models.Team, n)
	for i := range teams {
		teams[i] = &models.Team{ID: fmt.Sprintf("team-%02d", i), TournamentID: "t1"}
	}
	return teams
}

func noShuffle(int, func(i, j int)) {}

func TestFirstRoundGenerator_EvenTeamCounts(t *testing.T) {
	for _, n := range []int{2, 4, 6, 8, 16, 32} {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(uint64(n), 42))
			gen := NewFirstRoundGenerator(rng.Shuffle)

			bracket, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{TournamentID: "t1", Teams: makeTeams(n)})
			require.NoError(t, err)
			require.Len(t, bracket.Matches, n/2)
			assert.Nil(t, bracket.ByeTeamID)

			used := map[string]int{}
			for _, m := range bracket.Matches {
				assert.Equal(t, FirstRoundLabel, m.Round)
				assert.NotEqual(t, m.Team1ID, m.Team2ID)
				used[m.Team1ID]++
				used[m.Team2ID]++
			}
			assert.Len(t, used, n)
			for id, count := range used {
				assert.Equalf(t, 1, count, "team %s paired %d times", id, count)
			}
		})
	}
}

func TestFirstRoundGenerator_PairsConsecutiveAndLabelsCourts(t *testing.T) {
	gen := NewFirstRoundGenerator(noShuffle)

	bracket, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{Teams: makeTeams(4)})
	require.NoError(t, err)
	require.Len(t, bracket.Matches, 2)

	assert.Equal(t, "team-00", bracket.Matches[0].Team1ID)
	assert.Equal(t, "team-01", bracket.Matches[0].Team2ID)
	assert.Equal(t, "Court 1", bracket.Matches[0].CourtNumber)
	assert.Equal(t, 1, bracket.Matches[0].OrderInRound)

	assert.Equal(t, "team-02", bracket.Matches[1].Team1ID)
	assert.Equal(t, "team-03", bracket.Matches[1].Team2ID)
	assert.Equal(t, "Court 2", bracket.Matches[1].CourtNumber)
}

func TestFirstRoundGenerator_OddCountGivesLastTeamABye(t *testing.T) {
	gen := NewFirstRoundGenerator(noShuffle)

	bracket, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{Teams: makeTeams(5)})
	require.NoError(t, err)
	require.Len(t, bracket.Matches, 2)
	require.NotNil(t, bracket.ByeTeamID)
	assert.Equal(t, "team-04", *bracket.ByeTeamID)

	for _, m := range bracket.Matches {
		assert.NotEqual(t, "team-04", m.Team1ID)
		assert.NotEqual(t, "team-04", m.Team2ID)
	}
}

func TestFirstRoundGenerator_DoesNotReorderInput(t *testing.T) {
	teams := makeTeams(6)
	rng := rand.New(rand.NewPCG(7, 7))
	gen := NewFirstRoundGenerator(rng.Shuffle)

	_, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{Teams: teams})
	require.NoError(t, err)

	for i, team := range teams {
		assert.Equal(t, fmt.Sprintf("team-%02d", i), team.ID)
	}
}

func TestFirstRoundGenerator_Rejects(t *testing.T) {
	gen := NewFirstRoundGenerator(noShuffle)

	_, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{Teams: makeTeams(1)})
	assert.ErrorIs(t, err, ErrNotEnoughTeams)

	_, err = gen.GenerateBracket(context.Background(), GenerateBracketParams{})
	assert.ErrorIs(t, err, ErrNotEnoughTeams)

	dup := makeTeams(2)
	dup[1].ID = dup[0].ID
	_, err = gen.GenerateBracket(context.Background(), GenerateBracketParams{Teams: dup})
	assert.ErrorIs(t, err, ErrDuplicateTeam)
}
