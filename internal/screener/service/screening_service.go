package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/internal/screener/render"
	"golang-bandar-screener/internal/screener/scoring"
	"golang-bandar-screener/pkg/logger"
	"golang-bandar-screener/pkg/utils"
)

// ScreeningService runs the whole screening pipeline.
type ScreeningService interface {
	Run(ctx context.Context, progress ProgressReporter) (*dto.ScreeningResult, error)
}

type screeningService struct {
	cfg            *config.Config
	log            *logger.Logger
	acquisition    AcquisitionService
	engine         *scoring.Engine
	recommendation RecommendationService
	guard          RunGuard
	now            func() time.Time
}

// NewScreeningService creates a new ScreeningService.
func NewScreeningService(
	cfg *config.Config,
	log *logger.Logger,
	acquisition AcquisitionService,
	engine *scoring.Engine,
	recommendation RecommendationService,
	guard RunGuard,
) ScreeningService {
	return &screeningService{
		cfg:            cfg,
		log:            log,
		acquisition:    acquisition,
		engine:         engine,
		recommendation: recommendation,
		guard:          guard,
		now:            utils.TimeNowWIB,
	}
}

// Run executes one screening run. Only one run may be active at a time; a concurrent call
// fails with ErrRunInProgress. Every other failure, including a panic, is returned as a
// *RunError carrying the progress lines reported so far.
func (s *screeningService) Run(ctx context.Context, progress ProgressReporter) (result *dto.ScreeningResult, err error) {
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	recorder := NewProgressRecorder(s.log, progress)

	if err := s.guard.Acquire(ctx, runID); err != nil {
		s.log.WarnContext(ctx, "Screening run rejected", logger.ErrorField(err))
		return nil, err
	}
	defer func() {
		if releaseErr := s.guard.Release(context.WithoutCancel(ctx), runID); releaseErr != nil {
			s.log.ErrorContext(ctx, "Failed to release run guard", logger.ErrorField(releaseErr))
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "Screening run panicked", logger.Field("panic", r))
			recorder.Report(ctx, fmt.Sprintf("❌ Error: %v", r))
			result = nil
			err = &RunError{RunID: runID, Progress: recorder.Lines(), Err: fmt.Errorf("screening run panicked: %v", r)}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Screener.RunTimeout)
	defer cancel()

	startedAt := s.now()
	s.log.InfoContext(ctx, "Screening run started")

	result, err = s.run(ctx, recorder)
	if err != nil {
		recorder.Report(ctx, fmt.Sprintf("❌ Error: %s", err.Error()))
		s.log.ErrorContext(ctx, "Screening run failed", logger.ErrorField(err))
		return nil, &RunError{RunID: runID, Progress: recorder.Lines(), Err: err}
	}

	result.RunID = runID
	result.StartedAt = startedAt
	result.FinishedAt = s.now()
	result.Progress = recorder.Lines()

	s.log.InfoContext(ctx, "Screening run finished",
		logger.IntField("total_symbols", result.TotalSymbols),
		logger.IntField("total_retrieved", result.TotalRetrieved),
		logger.IntField("shortlist", len(result.Shortlist)),
		logger.StringField("recommendation_source", string(result.Recommendation.Source)),
	)
	return result, nil
}

func (s *screeningService) run(ctx context.Context, progress ProgressReporter) (*dto.ScreeningResult, error) {
	progress.Report(ctx, "📥 Loading stock symbols...")
	symbols, err := s.acquisition.LoadSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock symbols: %w", err)
	}

	progress.Report(ctx, fmt.Sprintf("🎯 Screening %d stocks fokus Bandarmology & Momentum...", len(symbols)))
	snapshots, err := s.acquisition.Acquire(ctx, symbols, progress)
	if err != nil {
		return nil, err
	}

	progress.Report(ctx, "🔍 Analisis Bandarmology & Momentum Entry...")
	scored := s.engine.ScoreAll(snapshots, s.now())
	shortlist, usedFallback := RankShortlist(scored, s.cfg.Criteria)
	if usedFallback {
		progress.Report(ctx, "⚠️ Tidak ada saham yang memenuhi kriteria bandarmology")
		progress.Report(ctx, fmt.Sprintf("🔄 Showing top %d volume leaders instead", len(shortlist)))
	} else {
		progress.Report(ctx, fmt.Sprintf("✅ Found %d potential trading stocks from %d total", len(shortlist), len(snapshots)))
	}

	progress.Report(ctx, "🤖 Generating trading recommendations dengan AI...")
	recommendation, err := s.recommendation.Recommend(ctx, shortlist, len(snapshots))
	if err != nil {
		return nil, err
	}
	if recommendation.Source == dto.RecommendationSourceFallback {
		progress.Report(ctx, "⚠️ AI tidak memberikan jawaban yang dapat digunakan, memakai rekomendasi lokal")
	}

	html, err := render.RenderResult(shortlist, len(snapshots), recommendation.Text)
	if err != nil {
		return nil, err
	}
	progress.Report(ctx, "✅ Trading analysis complete!")

	return &dto.ScreeningResult{
		TotalSymbols:          len(symbols),
		TotalRetrieved:        len(snapshots),
		Shortlist:             shortlist,
		UsedFallbackShortlist: usedFallback,
		Recommendation:        *recommendation,
		HTML:                  html,
	}, nil
}
