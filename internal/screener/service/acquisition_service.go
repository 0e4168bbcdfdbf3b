package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/internal/screener/repository"
	"golang-bandar-screener/pkg/logger"
	"golang-bandar-screener/pkg/utils"
)

// AcquisitionService loads the symbol list and fetches market snapshots in batches.
type AcquisitionService interface {
	LoadSymbols(ctx context.Context) ([]string, error)
	Acquire(ctx context.Context, symbols []string, progress ProgressReporter) ([]entity.MarketSnapshot, error)
}

type acquisitionService struct {
	cfg            *config.Config
	log            *logger.Logger
	symbolRepo     repository.SymbolRepository
	marketDataRepo repository.MarketDataRepository
}

// NewAcquisitionService creates a new AcquisitionService.
func NewAcquisitionService(
	cfg *config.Config,
	log *logger.Logger,
	symbolRepo repository.SymbolRepository,
	marketDataRepo repository.MarketDataRepository,
) AcquisitionService {
	return &acquisitionService{
		cfg:            cfg,
		log:            log,
		symbolRepo:     symbolRepo,
		marketDataRepo: marketDataRepo,
	}
}

func (s *acquisitionService) LoadSymbols(ctx context.Context) ([]string, error) {
	return s.symbolRepo.GetSymbols(ctx)
}

// Acquire fetches every symbol. Requests inside a batch run concurrently, batches run one
// after another with batch_delay in between. Failed symbols are skipped.
func (s *acquisitionService) Acquire(ctx context.Context, symbols []string, progress ProgressReporter) ([]entity.MarketSnapshot, error) {
	batchSize := s.cfg.Screener.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}

	total := len(symbols)
	snapshots := make([]entity.MarketSnapshot, 0, total)

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}

		progress.Report(ctx, fmt.Sprintf("⏳ Fetching %d to %d dari %d...", start+1, end, total))
		snapshots = append(snapshots, s.fetchBatch(ctx, symbols[start:end])...)

		if end >= total {
			break
		}
		if err := sleepContext(ctx, s.cfg.Screener.BatchDelay); err != nil {
			return nil, err
		}
	}

	if len(snapshots) == 0 {
		progress.Report(ctx, "❌ No stock data could be retrieved.")
		return nil, ErrNoStockData
	}

	progress.Report(ctx, fmt.Sprintf("✅ Retrieved %d stocks", len(snapshots)))
	return snapshots, nil
}

func (s *acquisitionService) fetchBatch(ctx context.Context, batch []string) []entity.MarketSnapshot {
	results := make([]*entity.MarketSnapshot, len(batch))

	var wg sync.WaitGroup
	for i, symbol := range batch {
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			snapshot, err := s.marketDataRepo.GetSnapshot(ctx, symbol)
			if err != nil {
				s.log.DebugContext(ctx, "Skipping symbol", logger.StringField("symbol", symbol), logger.ErrorField(err))
				return
			}
			results[i] = snapshot
		})
	}
	wg.Wait()

	snapshots := make([]entity.MarketSnapshot, 0, len(batch))
	for _, r := range results {
		if r != nil {
			snapshots = append(snapshots, *r)
		}
	}
	return snapshots
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
