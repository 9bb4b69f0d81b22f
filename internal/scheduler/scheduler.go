package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cenkalti/backoff/v4"
	"github.com/grizzco/salmon-rotation-bot/internal/locale"
	"github.com/grizzco/salmon-rotation-bot/internal/notify"
	"github.com/grizzco/salmon-rotation-bot/internal/platform/metrics"
	"github.com/grizzco/salmon-rotation-bot/internal/render"
	"github.com/grizzco/salmon-rotation-bot/internal/rotation"
	"go.uber.org/zap"
)

// FeedSource fetches a fresh schedule feed.
type FeedSource interface {
	FetchSchedule(ctx context.Context) (rotation.Feed, error)
}

// AssetFetcher downloads all images for one rotation before rendering.
type AssetFetcher interface {
	DownloadAll(ctx context.Context, entry rotation.Entry) (stagePath string, weaponPaths []string, err error)
}

// Renderer composes the notification image.
type Renderer interface {
	Render(spec render.Spec) (string, error)
}

// Config controls scheduler behavior.
type Config struct {
	// SuppressInitialNotification makes the first successful cycle skip
	// rendering and delivery, sleeping silently until the active
	// rotation's end.
	SuppressInitialNotification bool
	// RecheckInterval is the wait before refetching when the feed has no
	// active entry.
	RecheckInterval time.Duration
}

// Params carries the scheduler's collaborators.
type Params struct {
	Feed     FeedSource
	Assets   AssetFetcher
	Table    *locale.Table
	Renderer Renderer
	Notifier notify.Notifier
	Metrics  *metrics.Metrics
	Clock    clock.Clock
	Log      *zap.Logger
}

// Scheduler drives the rotation pipeline: fetch, select, resolve, render,
// notify, then sleep until the rotation's end time and repeat. Cycles are
// strictly sequential; each one arms the timer for its successor.
type Scheduler struct {
	feed     FeedSource
	assets   AssetFetcher
	table    *locale.Table
	renderer Renderer
	notifier notify.Notifier
	metrics  *metrics.Metrics
	clock    clock.Clock
	log      *zap.Logger

	cfg      Config
	stopChan chan struct{}
	running  bool
}

func New(p Params, cfg Config) *Scheduler {
	if p.Clock == nil {
		p.Clock = clock.New()
	}
	if cfg.RecheckInterval <= 0 {
		cfg.RecheckInterval = 10 * time.Minute
	}
	return &Scheduler{
		feed:     p.Feed,
		assets:   p.Assets,
		table:    p.Table,
		renderer: p.Renderer,
		notifier: p.Notifier,
		metrics:  p.Metrics,
		clock:    p.Clock,
		log:      p.Log,
		cfg:      cfg,
		stopChan: make(chan struct{}),
	}
}

// Start launches the cycle loop. Each Start arms a fresh stop channel, so
// a scheduler may be started again after Stop.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.log.Info("scheduler starting")
	go s.mainLoop(s.stopChan)
}

func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.log.Info("scheduler stopping")
	close(s.stopChan)
	s.running = false
}

// mainLoop runs cycles until stopped. A failed cycle never stalls the
// loop: transient errors retry after bounded exponential backoff, and an
// exhausted feed re-checks at a fixed interval, so a next wake-up always
// exists.
func (s *Scheduler) mainLoop(stop <-chan struct{}) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 10 * time.Second
	policy.MaxInterval = 10 * time.Minute
	policy.MaxElapsedTime = 0

	firstCycle := true
	for {
		silent := firstCycle && s.cfg.SuppressInitialNotification
		wait, err := s.runCycle(context.Background(), silent)

		switch {
		case err == nil:
			firstCycle = false
			policy.Reset()
			s.log.Info("cycle complete, sleeping until rotation end", zap.Duration("wait", wait))
		case errors.Is(err, rotation.ErrNoActiveEntry):
			wait = s.cfg.RecheckInterval
			s.log.Warn("no active rotation entry, re-checking later", zap.Duration("wait", wait))
		default:
			wait = policy.NextBackOff()
			s.metrics.IncCycleErrors()
			s.log.Error("cycle failed, retrying", zap.Error(err), zap.Duration("wait", wait))
		}

		timer := s.clock.Timer(wait)
		select {
		case <-timer.C:
		case <-stop:
			timer.Stop()
			return
		}
	}
}

// runCycle performs one pass of the pipeline and returns how long to sleep
// before the next one. When silent is true the cycle stops after selection
// and only computes the sleep until the active rotation's end.
func (s *Scheduler) runCycle(ctx context.Context, silent bool) (time.Duration, error) {
	s.metrics.IncCycles()

	feed, err := s.feed.FetchSchedule(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching schedule: %w", err)
	}

	entry, err := rotation.Select(feed, s.clock.Now())
	if err != nil {
		return 0, err
	}
	s.metrics.SetRotationEnd(entry.EndTime)

	if silent {
		s.log.Info("initial notification suppressed",
			zap.Time("rotationEnd", entry.EndTime))
		return entry.SleepUntilEnd(s.clock.Now()), nil
	}

	stageName, weaponNames := s.resolveNames(entry)

	stagePath, weaponPaths, err := s.assets.DownloadAll(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("downloading assets: %w", err)
	}

	imagePath, err := s.renderer.Render(render.Spec{
		BackgroundKey:    entry.BossID,
		StageImagePath:   stagePath,
		WeaponImagePaths: weaponPaths,
		LabelText:        stageName,
	})
	if err != nil {
		return 0, fmt.Errorf("rendering image: %w", err)
	}
	s.metrics.IncRenders()

	s.deliver(ctx, notify.Compose(entry, stageName, weaponNames, imagePath))

	return entry.SleepUntilEnd(s.clock.Now()), nil
}

// resolveNames looks up display names for the entry. Misses degrade to a
// blank label and never abort the cycle.
func (s *Scheduler) resolveNames(entry rotation.Entry) (string, []string) {
	stageName, err := s.table.StageName(entry.StageID)
	if err != nil {
		s.log.Warn("stage name not found", zap.String("stageID", entry.StageID))
		stageName = ""
	}

	weaponNames := make([]string, 0, len(entry.Weapons))
	for _, w := range entry.Weapons {
		name, err := s.table.WeaponName(w.ID)
		if err != nil {
			s.log.Warn("weapon name not found", zap.String("weaponID", w.ID))
			continue
		}
		weaponNames = append(weaponNames, name)
	}
	return stageName, weaponNames
}

// deliver posts the notification, retrying once. A failed delivery is
// logged and counted but never fails the cycle; the rotation loop must
// keep its next wake-up regardless.
func (s *Scheduler) deliver(ctx context.Context, msg notify.Message) {
	if err := s.notifier.Post(ctx, msg); err != nil {
		s.log.Warn("notification failed, retrying once", zap.Error(err))
		if err := s.notifier.Post(ctx, msg); err != nil {
			s.metrics.IncDeliveryErrors()
			s.log.Error("notification failed after retry", zap.Error(err))
			return
		}
	}
	s.metrics.IncNotifications()
}
