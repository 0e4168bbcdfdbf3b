package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/internal/screener/service"
	"golang-bandar-screener/pkg/logger"
	"golang-bandar-screener/pkg/telegram"
	"golang-bandar-screener/pkg/utils"
)

// Runner triggers screening runs on a cron schedule and reports them to Telegram.
type Runner struct {
	cfg       *config.Config
	screening service.ScreeningService
	notifier  telegram.Notifier
	logger    *logger.Logger
	cron      *cron.Cron
	schedule  cron.Schedule
}

// NewRunner creates a new Runner. The schedule is parsed here so a bad expression fails at startup.
func NewRunner(
	cfg *config.Config,
	screening service.ScreeningService,
	notifier telegram.Notifier,
	log *logger.Logger,
) (*Runner, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	r := &Runner{
		cfg:       cfg,
		screening: screening,
		notifier:  notifier,
		logger:    log,
	}

	if cfg.Screener.Schedule != "" {
		schedule, err := parser.Parse(cfg.Screener.Schedule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse screener.schedule %q: %w", cfg.Screener.Schedule, err)
		}
		r.schedule = schedule
	}

	cl := cronLogger{log.Sugar()}
	r.cron = cron.New(
		cron.WithParser(parser),
		cron.WithLocation(utils.WIB()),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	return r, nil
}

// Start schedules the screening job. It does nothing when no schedule is configured.
func (r *Runner) Start(ctx context.Context) {
	if r.schedule == nil {
		r.logger.Info("No screening schedule configured")
		return
	}

	r.cron.Schedule(r.schedule, cron.FuncJob(func() { r.scheduledRun(ctx) }))
	r.cron.Start()
	r.logger.Info("Screening scheduler started",
		logger.StringField("schedule", r.cfg.Screener.Schedule),
		logger.Field("next_run", r.schedule.Next(utils.TimeNowWIB())))
}

func (r *Runner) scheduledRun(ctx context.Context) {
	r.logger.Info("Scheduled screening run triggered")
	result, err := r.RunOnce(ctx)
	if err != nil {
		r.logger.Warn("Scheduled screening run did not complete", logger.ErrorField(err))
		return
	}
	r.logger.Info("Scheduled screening run completed",
		logger.StringField("run_id", result.RunID),
		logger.IntField("shortlist", len(result.Shortlist)))
}

// Stop waits for a running job to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("Screening scheduler stopped")
}

// RunOnce runs the pipeline and sends the outcome to the notifier.
// A run rejected by the run guard is skipped without an alert.
func (r *Runner) RunOnce(ctx context.Context) (*dto.ScreeningResult, error) {
	result, err := r.screening.Run(ctx, nil)
	if err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			r.logger.Warn("Skipping screening run, another run is active")
			return nil, err
		}
		r.notifyError(err)
		return nil, err
	}

	if err := telegram.SendMessages(r.notifier, telegram.FormatScreeningResultForTelegram(result)); err != nil {
		r.logger.Error("Failed to send screening result to Telegram", logger.ErrorField(err), logger.StringField("run_id", result.RunID))
	}
	return result, nil
}

func (r *Runner) notifyError(err error) {
	runID := "-"
	var runErr *service.RunError
	if errors.As(err, &runErr) {
		runID = runErr.RunID
	}

	msg := telegram.FormatErrorAlertMessage(utils.TimeNowWIB(), "screening", err.Error(), runID)
	if sendErr := r.notifier.SendMessage(msg); sendErr != nil {
		r.logger.Error("Failed to send error alert to Telegram", logger.ErrorField(sendErr), logger.StringField("run_id", runID))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
