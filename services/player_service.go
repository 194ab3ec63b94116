package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
)

type CreatePlayerInput struct {
	TeamID       string  `json:"team_id"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	JerseyNumber *int    `json:"jersey_number"`
	Position     *string `json:"position"`
}

type UpdatePlayerInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	JerseyNumber *int    `json:"jersey_number"`
	Position     *string `json:"position"`
}

type PlayerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	logger     *slog.Logger
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository, logger *slog.Logger) *PlayerService {
	return &PlayerService{playerRepo: playerRepo, teamRepo: teamRepo, logger: logger}
}

func validEmail(email *string) bool {
	if email == nil {
		return true
	}
	_, err := mail.ParseAddress(*email)
	return err == nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	v := newValidator()
	v.check(notBlank(input.TeamID), "team_id", "must be provided")
	v.check(notBlank(input.Name), "name", "must be provided")
	v.check(validEmail(input.Email), "email", "must be a valid email address")
	v.check(nonNegative(input.JerseyNumber), "jersey_number", "must not be negative")
	v.check(optionalNotBlank(input.Position), "position", "must not be empty")
	if err := v.err(); err != nil {
		return nil, err
	}

	player := &models.Player{
		Name:         input.Name,
		Email:        input.Email,
		TeamID:       input.TeamID,
		JerseyNumber: input.JerseyNumber,
		Position:     input.Position,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	return player, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) ListPlayersByTeam(ctx context.Context, teamID string) ([]*models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, nil, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %s: %w", teamID, err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %s: %w", teamID, err)
	}
	return players, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	v := newValidator()
	if input.Name != nil {
		v.check(notBlank(*input.Name), "name", "must not be empty")
		player.Name = *input.Name
	}
	if input.Email != nil {
		v.check(validEmail(input.Email), "email", "must be a valid email address")
		player.Email = input.Email
	}
	if input.JerseyNumber != nil {
		v.check(nonNegative(input.JerseyNumber), "jersey_number", "must not be negative")
		player.JerseyNumber = input.JerseyNumber
	}
	if input.Position != nil {
		v.check(notBlank(*input.Position), "position", "must not be empty")
		player.Position = input.Position
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player %s: %w", id, err)
	}
	return player, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, id string) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	return nil
}
