package service

import (
	"context"
	"errors"
	"esports-tracker/internal/domain"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeStore struct {
	players map[string]*domain.Player
	records []domain.MatchRecord
	err     error
	calls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{players: map[string]*domain.Player{}}
}

func (f *fakeStore) FetchRecords(_ context.Context, r domain.DateRange) ([]domain.MatchRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.MatchRecord
	for _, rec := range f.records {
		if p, ok := f.players[rec.Player]; ok && !p.Active {
			continue
		}
		if r.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, name string) (*domain.Player, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.players[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, name)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) Create(_ context.Context, name string) (*domain.Player, error) {
	if _, ok := f.players[name]; ok {
		return nil, domain.ErrPlayerExists
	}
	p := &domain.Player{ID: int64(len(f.players) + 1), Name: name, Active: true}
	f.players[name] = p
	return p, nil
}

func (f *fakeStore) SetActive(_ context.Context, name string, active bool) error {
	p, ok := f.players[name]
	if !ok {
		return domain.ErrPlayerNotFound
	}
	p.Active = active
	return nil
}

func (f *fakeStore) History(_ context.Context, name string) ([]domain.MatchRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.MatchRecord
	for _, r := range f.records {
		if r.Player == name {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeStore) Insert(_ context.Context, _ int64, r *domain.MatchRecord) error {
	r.ID = fmt.Sprintf("rec-%d", len(f.records)+1)
	f.records = append(f.records, *r)
	return nil
}

func seeded() *fakeStore {
	f := newFakeStore()
	f.players["P1"] = &domain.Player{ID: 1, Name: "P1", Active: true}
	f.players["P2"] = &domain.Player{ID: 2, Name: "P2", Active: true}
	f.records = []domain.MatchRecord{
		{ID: "a", Player: "P1", Date: day("2024-01-01"), Kills: 10, Booyah: 1, Damage: 500},
		{ID: "b", Player: "P1", Date: day("2024-01-05"), Kills: 5, Damage: 200},
		{ID: "c", Player: "P2", Date: day("2024-01-03"), Kills: 8, Booyah: 1, Damage: 300},
	}
	return f
}

func TestReportExampleScenario(t *testing.T) {
	svc := NewReportService(seeded(), zerolog.Nop())

	report, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "P1", report.Entries[0].Summary.Name)
	assert.Equal(t, 15, report.Entries[0].Summary.Kills)
	assert.Equal(t, "P2", report.Entries[1].Summary.Name)
	assert.True(t, report.Range.Unbounded())
}

func TestReportDateRangeIsEchoed(t *testing.T) {
	svc := NewReportService(seeded(), zerolog.Nop())

	r := domain.ParseDateRange("2024-01-02", "2024-01-05")
	report, err := svc.Report(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-02", report.Range.StartString())
	assert.Equal(t, "2024-01-05", report.Range.EndString())
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "P2", report.Entries[0].Summary.Name)
	assert.Equal(t, 5, report.Entries[1].Summary.Kills)
}

func TestReportStorageFailureReturnsNoReport(t *testing.T) {
	store := seeded()
	store.err = fmt.Errorf("%w: disk gone", domain.ErrStorageUnavailable)
	svc := NewReportService(store, zerolog.Nop())

	report, err := svc.Report(context.Background(), domain.DateRange{})
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
}

func TestReportReadsStoreOncePerRequest(t *testing.T) {
	store := seeded()
	svc := NewReportService(store, zerolog.Nop())

	_, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	store.records = append(store.records, domain.MatchRecord{ID: "d", Player: "P2", Date: day("2024-02-01"), Kills: 20})

	report, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
	assert.Equal(t, "P2", report.Entries[0].Summary.Name, "no state carried between requests")
}

func TestProfile(t *testing.T) {
	svc := NewPlayerService(seeded(), seeded(), zerolog.Nop())

	profile, err := svc.Profile(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, "P1", profile.Player.Name)
	assert.Equal(t, 2, profile.Summary.Matches)
	assert.Equal(t, 15, profile.Summary.Kills)
	assert.Equal(t, 7.5, profile.Summary.AvgKills)
	assert.Equal(t, 50.0, profile.Summary.WinRate)
}

func TestProfileWithoutMatches(t *testing.T) {
	store := seeded()
	store.players["P3"] = &domain.Player{ID: 3, Name: "P3", Active: true}
	svc := NewPlayerService(store, store, zerolog.Nop())

	profile, err := svc.Profile(context.Background(), "P3")
	require.NoError(t, err)
	assert.Equal(t, "P3", profile.Summary.Name)
	assert.Zero(t, profile.Summary.Matches)
	assert.Zero(t, profile.Summary.WinRate)
}

func TestProfileUnknownPlayer(t *testing.T) {
	store := seeded()
	svc := NewPlayerService(store, store, zerolog.Nop())

	_, err := svc.Profile(context.Background(), "ghost")
	assert.True(t, errors.Is(err, domain.ErrPlayerNotFound))
}

func TestHistoryAndGraphOrdering(t *testing.T) {
	store := seeded()
	svc := NewPlayerService(store, store, zerolog.Nop())

	history, err := svc.History(context.Background(), "P1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "b", history[0].ID)

	graph, err := svc.Graph(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-05"}, graph.Dates)
	assert.Equal(t, []int{10, 5}, graph.Kills)
}

func TestSubmit(t *testing.T) {
	store := seeded()
	svc := NewPlayerService(store, store, zerolog.Nop())
	ctx := context.Background()

	rec, err := svc.Submit(ctx, Submission{Player: "P2", Date: "2024-02-01", Kills: 4, Booyah: 1, Damage: 321.5, Survival: 900})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Len(t, store.records, 4)

	_, err = svc.Submit(ctx, Submission{Player: "P2", Date: "01/02/2024"})
	assert.True(t, errors.Is(err, domain.ErrInvalidRecord))

	_, err = svc.Submit(ctx, Submission{Player: "P2", Date: "2024-02-01", Kills: -1})
	assert.True(t, errors.Is(err, domain.ErrInvalidRecord))
	assert.True(t, errors.Is(err, domain.ErrMalformedRecord))

	_, err = svc.Submit(ctx, Submission{Player: "P2", Date: "2024-02-01", Survival: -3})
	assert.True(t, errors.Is(err, domain.ErrInvalidRecord))

	_, err = svc.Submit(ctx, Submission{Player: "ghost", Date: "2024-02-01"})
	assert.True(t, errors.Is(err, domain.ErrPlayerNotFound))

	require.NoError(t, svc.SetActive(ctx, "P2", false))
	_, err = svc.Submit(ctx, Submission{Player: "P2", Date: "2024-02-01"})
	assert.True(t, errors.Is(err, domain.ErrPlayerNotFound))
}

func TestCreatePlayer(t *testing.T) {
	store := newFakeStore()
	svc := NewPlayerService(store, store, zerolog.Nop())

	p, err := svc.Create(context.Background(), "  Ace ")
	require.NoError(t, err)
	assert.Equal(t, "Ace", p.Name)

	_, err = svc.Create(context.Background(), "   ")
	assert.True(t, errors.Is(err, domain.ErrInvalidRecord))
}
