package splatnet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/grizzco/salmon-rotation-bot/internal/locale"
	"github.com/grizzco/salmon-rotation-bot/internal/rotation"
	"go.uber.org/zap"
)

const (
	// DefaultScheduleURL is the public Salmon Run schedule feed.
	DefaultScheduleURL = "https://splatoon3.ink/data/schedules.json"
	// DefaultTranslationURL is the localized name table for stages and weapons.
	DefaultTranslationURL = "https://splatoon3.ink/data/locale/ko-KR.json"
)

// ErrTransport marks feed fetch failures (network error or non-2xx status).
var ErrTransport = errors.New("splatnet transport error")

// Client fetches the schedule and translation feeds.
type Client struct {
	httpClient     *http.Client
	scheduleURL    string
	translationURL string
	log            *zap.Logger
}

// NewClient creates a feed client. Empty URLs fall back to the public
// splatoon3.ink endpoints.
func NewClient(scheduleURL, translationURL string, timeout time.Duration, log *zap.Logger) *Client {
	if scheduleURL == "" {
		scheduleURL = DefaultScheduleURL
	}
	if translationURL == "" {
		translationURL = DefaultTranslationURL
	}
	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		scheduleURL:    scheduleURL,
		translationURL: translationURL,
		log:            log,
	}
}

// FetchSchedule retrieves the Salmon Run schedule and decodes it into the
// ordered rotation feed. The feed is refetched fresh on every cycle.
func (c *Client) FetchSchedule(ctx context.Context) (rotation.Feed, error) {
	c.log.Debug("fetching schedule", zap.String("url", c.scheduleURL))

	var resp scheduleResponse
	if err := c.getJSON(ctx, c.scheduleURL, &resp); err != nil {
		return nil, err
	}

	nodes := resp.Data.CoopGroupingSchedule.RegularSchedules.Nodes
	feed := make(rotation.Feed, 0, len(nodes))
	for _, node := range nodes {
		entry := rotation.Entry{
			StartTime:     node.StartTime,
			EndTime:       node.EndTime,
			BossID:        node.Setting.Boss.ID,
			StageID:       node.Setting.CoopStage.ID,
			StageImageURL: node.Setting.CoopStage.Image.URL,
		}
		for _, w := range node.Setting.Weapons {
			entry.Weapons = append(entry.Weapons, rotation.Weapon{
				ID:       w.SplatoonInkID,
				ImageURL: w.Image.URL,
			})
		}
		feed = append(feed, entry)
	}

	c.log.Debug("schedule fetched", zap.Int("entries", len(feed)))
	return feed, nil
}

// FetchLocale retrieves the translation feed and builds the read-only
// lookup table. Called once at startup.
func (c *Client) FetchLocale(ctx context.Context) (*locale.Table, error) {
	c.log.Debug("fetching translations", zap.String("url", c.translationURL))

	var resp localeResponse
	if err := c.getJSON(ctx, c.translationURL, &resp); err != nil {
		return nil, err
	}

	stages := make(map[string]string, len(resp.Stages))
	for id, s := range resp.Stages {
		stages[id] = s.Name
	}
	weapons := make(map[string]string, len(resp.Weapons))
	for id, w := range resp.Weapons {
		weapons[id] = w.Name
	}

	c.log.Info("translation table loaded",
		zap.Int("stages", len(stages)),
		zap.Int("weapons", len(weapons)))
	return locale.NewTable(stages, weapons), nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrTransport, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: GET %s: unexpected status %d", ErrTransport, url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}
