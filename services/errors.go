package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Сущности
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchStatsNotFound = errors.New("match stats not found")
	ErrCourtNotFound      = errors.New("court not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrMediaNotFound      = errors.New("media not found")
	ErrInquiryNotFound    = errors.New("inquiry not found")
	ErrBrandAssetNotFound = errors.New("brand asset not found")
	ErrUserNotFound       = errors.New("user not found")

	// Валидация и бизнес-правила (400)
	ErrValidationFailed        = errors.New("validation failed")
	ErrInvalidReference        = errors.New("referenced resource does not exist")
	ErrNotEnoughTeams          = errors.New("at least 2 teams are required to generate a bracket")
	ErrTiedAtThreshold         = errors.New("a match cannot finish tied at or above the win threshold")
	ErrTeamsNotInTournament    = errors.New("both teams must be distinct teams of the match tournament")
	ErrPlayerNotInMatch        = errors.New("player does not belong to either team of the match")
	ErrInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrProductOutOfStock       = errors.New("product is out of stock")

	// Конфликты (409)
	ErrBracketExists        = errors.New("bracket already generated for this tournament")
	ErrMatchCompleted       = errors.New("match is completed; reopen it before editing the score")
	ErrMatchNotCompleted    = errors.New("only a completed match can be reopened")
	ErrMatchVersionConflict = errors.New("match was modified by another request")
	ErrTournamentFull       = errors.New("tournament registration is full")
	ErrRegistrationClosed   = errors.New("tournament registration is closed")
	ErrVisibilityLogExists  = errors.New("visibility already logged for this court and date")
	ErrUsernameTaken        = errors.New("username is already taken")

	// Аутентификация и авторизация
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Инфраструктура
	ErrStorageDisabled = errors.New("media storage is not configured")
)

// ValidationError несёт ошибки по полям; errors.Is(err, ErrValidationFailed) истинно.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

type validator struct {
	fields map[string]string
}

func newValidator() *validator {
	return &validator{fields: make(map[string]string)}
}

// check записывает первое сообщение для поля, если условие не выполнено.
func (v *validator) check(ok bool, field, message string) {
	if ok {
		return
	}
	if _, exists := v.fields[field]; !exists {
		v.fields[field] = message
	}
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func optionalNotBlank(s *string) bool {
	return s == nil || notBlank(*s)
}

func nonNegative(n *int) bool {
	return n == nil || *n >= 0
}
