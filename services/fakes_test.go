package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
	"github.com/Dosada05/league-api/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTx выполняет fn без транзакции; репозитории-фейки игнорируют exec.
type fakeTx struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeTx) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return fn(nil)
}

type recordingHub struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHub) BroadcastToRoom(roomID, eventType string, _ interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, roomID+":"+eventType)
}

type store struct {
	mu          sync.Mutex
	seq         int
	tournaments map[string]*models.Tournament
	teams       map[string]*models.Team
	players     map[string]*models.Player
	matches     map[string]*models.Match
	stats       map[string]*models.MatchStats
	courts      map[string]*models.Court
	logs        map[string]*models.CourtVisibilityLog
	products    map[string]*models.Product
	orders      map[string]*models.Order
	media       map[string]*models.Media
	users       map[string]*models.User
}

func newStore() *store {
	return &store{
		tournaments: map[string]*models.Tournament{},
		teams:       map[string]*models.Team{},
		players:     map[string]*models.Player{},
		matches:     map[string]*models.Match{},
		stats:       map[string]*models.MatchStats{},
		courts:      map[string]*models.Court{},
		logs:        map[string]*models.CourtVisibilityLog{},
		products:    map[string]*models.Product{},
		orders:      map[string]*models.Order{},
		media:       map[string]*models.Media{},
		users:       map[string]*models.User{},
	}
}

func (s *store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *store) stamp() time.Time {
	return time.Date(2024, 3, 1, 12, 0, s.seq, 0, time.UTC)
}

// --- tournaments ---

type fakeTournamentRepo struct{ s *store }

func (r fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == "" {
		t.ID = r.s.nextID("tournament")
	}
	t.CreatedAt = r.s.stamp()
	cp := *t
	r.s.tournaments[t.ID] = &cp
	return nil
}

func (r fakeTournamentRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r fakeTournamentRepo) LockByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Tournament, error) {
	return r.GetByID(ctx, exec, id)
}

func (r fakeTournamentRepo) List(_ context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Tournament, 0)
	for _, t := range r.s.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r fakeTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	cp := *t
	cp.Teams, cp.Matches = nil, nil
	r.s.tournaments[t.ID] = &cp
	return nil
}

func (r fakeTournamentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.s.tournaments, id)
	return nil
}

// --- teams ---

type fakeTeamRepo struct{ s *store }

func (r fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, t *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[t.TournamentID]; !ok {
		return repositories.ErrTeamTournamentInvalid
	}
	if t.ID == "" {
		t.ID = r.s.nextID("team")
	}
	t.CreatedAt = r.s.stamp()
	cp := *t
	r.s.teams[t.ID] = &cp
	return nil
}

func (r fakeTeamRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	cp := *t
	return &cp, nil
}

func (r fakeTeamRepo) List(_ context.Context) ([]*models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Team, 0, len(r.s.teams))
	for _, t := range r.s.teams {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeTeamRepo) ListByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID string) ([]*models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Team, 0)
	for _, t := range r.s.teams {
		if t.TournamentID == tournamentID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r fakeTeamRepo) CountByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) (int, error) {
	teams, err := r.ListByTournament(ctx, exec, tournamentID)
	return len(teams), err
}

func (r fakeTeamRepo) Update(_ context.Context, t *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.teams[t.ID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	existing.Name, existing.University = t.Name, t.University
	return nil
}

func (r fakeTeamRepo) AdjustRecord(_ context.Context, _ repositories.SQLExecutor, id string, winsDelta, lossesDelta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.Wins = max(t.Wins+winsDelta, 0)
	t.Losses = max(t.Losses+lossesDelta, 0)
	return nil
}

// Delete каскадно удаляет матчи команды, как ON DELETE CASCADE в схеме.
func (r fakeTeamRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.s.teams, id)
	for matchID, m := range r.s.matches {
		if m.HasTeam(id) {
			delete(r.s.matches, matchID)
		}
	}
	return nil
}

// --- players ---

type fakePlayerRepo struct{ s *store }

func (r fakePlayerRepo) Create(_ context.Context, p *models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[p.TeamID]; !ok {
		return repositories.ErrPlayerTeamInvalid
	}
	if p.ID == "" {
		p.ID = r.s.nextID("player")
	}
	p.CreatedAt = r.s.stamp()
	cp := *p
	r.s.players[p.ID] = &cp
	return nil
}

func (r fakePlayerRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakePlayerRepo) List(_ context.Context) ([]*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Player, 0, len(r.s.players))
	for _, p := range r.s.players {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakePlayerRepo) ListByTeam(_ context.Context, teamID string) ([]*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Player, 0)
	for _, p := range r.s.players {
		if p.TeamID == teamID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakePlayerRepo) Update(_ context.Context, p *models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[p.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	cp := *p
	r.s.players[p.ID] = &cp
	return nil
}

func (r fakePlayerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.s.players, id)
	return nil
}

// --- matches ---

type fakeMatchRepo struct{ s *store }

func (r fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = r.s.nextID("match")
	}
	if m.Version == 0 {
		m.Version = 1
	}
	m.CreatedAt = r.s.stamp()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	r.s.matches[m.ID] = &cp
	return nil
}

func (r fakeMatchRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r fakeMatchRepo) LockByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Match, error) {
	return r.GetByID(ctx, exec, id)
}

func (r fakeMatchRepo) List(_ context.Context) ([]*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Match, 0, len(r.s.matches))
	for _, m := range r.s.matches {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeMatchRepo) ListByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID string) ([]*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Match, 0)
	for _, m := range r.s.matches {
		if m.TournamentID == tournamentID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return derefString(out[i].CourtNumber) < derefString(out[j].CourtNumber) })
	return out, nil
}

func (r fakeMatchRepo) CountByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) (int, error) {
	matches, err := r.ListByTournament(ctx, exec, tournamentID)
	return len(matches), err
}

func (r fakeMatchRepo) Update(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.matches[m.ID]
	if !ok || existing.Version != m.Version {
		return repositories.ErrMatchVersionConflict
	}
	m.Version++
	m.UpdatedAt = r.s.stamp()
	cp := *m
	r.s.matches[m.ID] = &cp
	return nil
}

func (r fakeMatchRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.s.matches, id)
	return nil
}

// --- match stats ---

type fakeStatsRepo struct{ s *store }

func (r fakeStatsRepo) Upsert(_ context.Context, _ repositories.SQLExecutor, st *models.MatchStats) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.stats {
		if existing.MatchID == st.MatchID && existing.PlayerID == st.PlayerID {
			existing.Points, existing.Assists, existing.Rebounds = st.Points, st.Assists, st.Rebounds
			existing.UpdatedAt = r.s.stamp()
			st.ID, st.UpdatedAt = existing.ID, existing.UpdatedAt
			return nil
		}
	}
	if st.ID == "" {
		st.ID = r.s.nextID("stats")
	}
	st.UpdatedAt = r.s.stamp()
	cp := *st
	r.s.stats[st.ID] = &cp
	return nil
}

func (r fakeStatsRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.MatchStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.stats[id]
	if !ok {
		return nil, repositories.ErrMatchStatsNotFound
	}
	cp := *st
	return &cp, nil
}

func (r fakeStatsRepo) GetByMatchAndPlayer(_ context.Context, _ repositories.SQLExecutor, matchID, playerID string) (*models.MatchStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.stats {
		if st.MatchID == matchID && st.PlayerID == playerID {
			cp := *st
			return &cp, nil
		}
	}
	return nil, repositories.ErrMatchStatsNotFound
}

func (r fakeStatsRepo) ListByMatch(_ context.Context, matchID string) ([]*models.MatchStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.MatchStats, 0)
	for _, st := range r.s.stats {
		if st.MatchID == matchID {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakeStatsRepo) Update(_ context.Context, _ repositories.SQLExecutor, st *models.MatchStats) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stats[st.ID]; !ok {
		return repositories.ErrMatchStatsNotFound
	}
	st.UpdatedAt = r.s.stamp()
	cp := *st
	r.s.stats[st.ID] = &cp
	return nil
}

// --- courts ---

type fakeCourtRepo struct{ s *store }

func (r fakeCourtRepo) Create(_ context.Context, c *models.Court) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == "" {
		c.ID = r.s.nextID("court")
	}
	cp := *c
	r.s.courts[c.ID] = &cp
	return nil
}

func (r fakeCourtRepo) GetByID(_ context.Context, id string) (*models.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courts[id]
	if !ok {
		return nil, repositories.ErrCourtNotFound
	}
	cp := *c
	return &cp, nil
}

func (r fakeCourtRepo) List(_ context.Context, city *string) ([]*models.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Court, 0)
	for _, c := range r.s.courts {
		if city != nil && c.City != *city {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r fakeCourtRepo) Update(_ context.Context, c *models.Court) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courts[c.ID]; !ok {
		return repositories.ErrCourtNotFound
	}
	cp := *c
	r.s.courts[c.ID] = &cp
	return nil
}

func (r fakeCourtRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courts[id]; !ok {
		return repositories.ErrCourtNotFound
	}
	delete(r.s.courts, id)
	return nil
}

type fakeLogRepo struct{ s *store }

func (r fakeLogRepo) Create(_ context.Context, l *models.CourtVisibilityLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courts[l.CourtID]; !ok {
		return repositories.ErrVisibilityLogCourtInvalid
	}
	for _, existing := range r.s.logs {
		if existing.CourtID == l.CourtID && existing.Date.Equal(l.Date) {
			return repositories.ErrVisibilityLogDateConflict
		}
	}
	if l.ID == "" {
		l.ID = r.s.nextID("log")
	}
	cp := *l
	r.s.logs[l.ID] = &cp
	return nil
}

func (r fakeLogRepo) ListByCourt(_ context.Context, courtID string, limit int) ([]*models.CourtVisibilityLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.CourtVisibilityLog, 0)
	for _, l := range r.s.logs {
		if l.CourtID == courtID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- commerce ---

type fakeProductRepo struct{ s *store }

func (r fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = r.s.nextID("product")
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r fakeProductRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakeProductRepo) List(_ context.Context, _ *string) ([]*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r fakeProductRepo) Update(_ context.Context, p *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return repositories.ErrProductNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r fakeProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return repositories.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

type fakeOrderRepo struct{ s *store }

func (r fakeOrderRepo) Create(_ context.Context, _ repositories.SQLExecutor, o *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o.ID == "" {
		o.ID = r.s.nextID("order")
	}
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r fakeOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, repositories.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r fakeOrderRepo) List(_ context.Context, _ *string) ([]*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r fakeOrderRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return repositories.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

// --- media ---

type fakeMediaRepo struct{ s *store }

func (r fakeMediaRepo) Create(_ context.Context, m *models.Media) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = r.s.nextID("media")
	}
	cp := *m
	r.s.media[m.ID] = &cp
	return nil
}

func (r fakeMediaRepo) GetByID(_ context.Context, id string) (*models.Media, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.media[id]
	if !ok {
		return nil, repositories.ErrMediaNotFound
	}
	cp := *m
	return &cp, nil
}

func (r fakeMediaRepo) List(_ context.Context, _ *string) ([]*models.Media, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Media, 0, len(r.s.media))
	for _, m := range r.s.media {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r fakeMediaRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.media[id]; !ok {
		return repositories.ErrMediaNotFound
	}
	delete(r.s.media, id)
	return nil
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string][]byte{}}
}

func (u *fakeUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

// --- users ---

type fakeUserRepo struct{ s *store }

func (r fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	if u.ID == "" {
		u.ID = r.s.nextID("user")
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}
