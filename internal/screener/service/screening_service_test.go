package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/internal/screener/repository"
	"golang-bandar-screener/internal/screener/scoring"
)

type screeningFixture struct {
	symbols *stubSymbolRepository
	market  *stubMarketDataRepository
	ai      *stubAIRepository
	guard   RunGuard
	svc     ScreeningService
}

func newScreeningFixture(t *testing.T) *screeningFixture {
	t.Helper()
	cfg := newTestConfig()
	log := newTestLogger()

	raw, err := json.Marshal(map[string]string{"response": longAnswer})
	require.NoError(t, err)

	f := &screeningFixture{
		symbols: &stubSymbolRepository{symbols: []string{"ABCD", "PENY", "NONE"}},
		market: &stubMarketDataRepository{snapshots: map[string]entity.MarketSnapshot{
			"ABCD": {Symbol: "ABCD", Price: 1200, ChangePercent: 1.0, Volume: 1300, AverageVolume: 1000, MarketCap: 3e11},
			"PENY": {Symbol: "PENY", Price: 30, Volume: 5000, AverageVolume: 1000},
		}},
		ai:    &stubAIRepository{resp: string(raw)},
		guard: NewLocalRunGuard(),
	}
	f.svc = NewScreeningService(
		cfg,
		log,
		NewAcquisitionService(cfg, log, f.symbols, f.market),
		scoring.NewEngine(scoring.DefaultConfig()),
		NewRecommendationService(f.ai, log),
		f.guard,
	)
	return f
}

func TestScreeningService_Run(t *testing.T) {
	f := newScreeningFixture(t)

	var live []string
	result, err := f.svc.Run(context.Background(), ProgressFunc(func(_ context.Context, line string) {
		live = append(live, line)
	}))
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 3, result.TotalSymbols)
	assert.Equal(t, 2, result.TotalRetrieved)
	assert.False(t, result.UsedFallbackShortlist)
	require.Len(t, result.Shortlist, 1)
	assert.Equal(t, "ABCD", result.Shortlist[0].Symbol)
	assert.Equal(t, dto.RecommendationSourceAI, result.Recommendation.Source)
	assert.Contains(t, result.HTML, `<table class="trading-table">`)
	assert.Contains(t, result.HTML, "trading-summary")
	assert.Equal(t, live, result.Progress)
	assert.Equal(t, "✅ Trading analysis complete!", result.Progress[len(result.Progress)-1])
	assert.False(t, result.FinishedAt.Before(result.StartedAt))

	require.Len(t, f.ai.prompts, 1)
	assert.Contains(t, f.ai.prompts[0], "1. ABCD")
	assert.NotContains(t, f.ai.prompts[0], "PENY")
}

func TestScreeningService_EmptySymbolList(t *testing.T) {
	f := newScreeningFixture(t)
	f.symbols.symbols = []string{}

	_, err := f.svc.Run(context.Background(), nil)

	require.ErrorIs(t, err, ErrNoStockData)
	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, "❌ Error: no stock data retrieved", runErr.Progress[len(runErr.Progress)-1])
	assert.Empty(t, f.ai.prompts)
	assert.NoError(t, f.guard.Acquire(context.Background(), "next"), "guard must be released")
}

func TestScreeningService_SymbolListFailure(t *testing.T) {
	f := newScreeningFixture(t)
	f.symbols.err = repository.ErrInvalidSymbolList

	_, err := f.svc.Run(context.Background(), nil)

	assert.ErrorIs(t, err, repository.ErrInvalidSymbolList)
	assert.Empty(t, f.market.calls)
	assert.Empty(t, f.ai.prompts)
}

func TestScreeningService_AIFailureAborts(t *testing.T) {
	f := newScreeningFixture(t)
	f.ai.err = &repository.UpstreamError{StatusCode: 500}

	_, err := f.svc.Run(context.Background(), nil)

	var upstream *repository.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.NoError(t, f.guard.Acquire(context.Background(), "next"))
}

func TestScreeningService_RejectsConcurrentRun(t *testing.T) {
	f := newScreeningFixture(t)
	require.NoError(t, f.guard.Acquire(context.Background(), "someone-else"))

	_, err := f.svc.Run(context.Background(), nil)

	assert.ErrorIs(t, err, ErrRunInProgress)
	assert.Empty(t, f.market.calls)
}

func TestScreeningService_SingleInFlight(t *testing.T) {
	f := newScreeningFixture(t)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		rejected int
		started  = make(chan struct{})
		release  = make(chan struct{})
	)
	blocking := ProgressFunc(func(_ context.Context, line string) {
		if line == "📥 Loading stock symbols..." {
			close(started)
			<-release
		}
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := f.svc.Run(context.Background(), blocking)
		assert.NoError(t, err)
	}()
	<-started

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Run(context.Background(), nil); errors.Is(err, ErrRunInProgress) {
			mu.Lock()
			rejected++
			mu.Unlock()
		}
	}
	close(release)
	wg.Wait()

	assert.Equal(t, 3, rejected)
}

func TestScreeningService_FallbackShortlist(t *testing.T) {
	f := newScreeningFixture(t)
	f.market.snapshots = map[string]entity.MarketSnapshot{
		"ABCD": {Symbol: "ABCD", Price: 1000, ChangePercent: -5, Volume: 4_000_000, AverageVolume: 8_000_000},
		"PENY": {Symbol: "PENY", Price: 500, ChangePercent: -4, Volume: 9_000_000, AverageVolume: 9_000_000},
	}
	f.ai.resp = `{"response": "maaf"}`

	result, err := f.svc.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, result.UsedFallbackShortlist)
	assert.Equal(t, []string{"PENY", "ABCD"}, symbolsOf(result.Shortlist))
	assert.Equal(t, dto.RecommendationSourceFallback, result.Recommendation.Source)
	assert.Contains(t, result.Progress, "🔄 Showing top 2 volume leaders instead")
}

type panickingAcquisition struct{}

func (panickingAcquisition) LoadSymbols(context.Context) ([]string, error) {
	return []string{"ABCD"}, nil
}

func (panickingAcquisition) Acquire(context.Context, []string, ProgressReporter) ([]entity.MarketSnapshot, error) {
	panic("unexpected nil snapshot")
}

func TestScreeningService_RecoversPanic(t *testing.T) {
	cfg := newTestConfig()
	guard := NewLocalRunGuard()
	svc := NewScreeningService(cfg, newTestLogger(), panickingAcquisition{},
		scoring.NewEngine(scoring.DefaultConfig()), NewRecommendationService(&stubAIRepository{}, newTestLogger()), guard)

	result, err := svc.Run(context.Background(), nil)

	assert.Nil(t, result)
	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, "❌ Error: unexpected nil snapshot", runErr.Progress[len(runErr.Progress)-1])
	assert.NoError(t, guard.Acquire(context.Background(), "next"))
}
