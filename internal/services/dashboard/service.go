// Package dashboard orchestrates portfolio persistence, health evaluation,
// and import/export over the key-value storage collaborator.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mfletcher/nestegg/internal/common"
	"github.com/mfletcher/nestegg/internal/interfaces"
	"github.com/mfletcher/nestegg/internal/models"
	"github.com/mfletcher/nestegg/internal/services/calc"
)

// Storage keys. The version suffix lets a future schema change migrate
// rather than misread old records.
const (
	portfolioKey = "nestegg:portfolio:v1"
	backupKey    = "nestegg:portfolio:v1:backup"
	settingsKey  = "nestegg:settings:v1"
)

// saveDebounce is the inactivity window before a queued edit is committed.
// A later edit supersedes and restarts the delay.
const saveDebounce = time.Second

// Service implements interfaces.DashboardService.
type Service struct {
	storage    interfaces.KeyValueStore
	thresholds models.AllocationThresholds
	fi         calc.FIAssumptions
	fiTarget   float64
	history    []models.HistoricalEntry
	logger     *common.Logger

	saver *debouncer
}

// NewService creates a dashboard service. Thresholds, FI assumptions and
// the reference series come from config, never from package state.
func NewService(storage interfaces.KeyValueStore, config *common.Config, logger *common.Logger) *Service {
	s := &Service{
		storage: storage,
		thresholds: models.AllocationThresholds{
			HedgeMaxPct:    config.Thresholds.HedgeMaxPct,
			GrowthMaxPct:   config.Thresholds.GrowthMaxPct,
			CryptoMaxPct:   config.Thresholds.CryptoMaxPct,
			HedgeTargetPct: config.Thresholds.HedgeTargetPct,
		},
		fi: calc.FIAssumptions{
			WithdrawalRate: config.FI.WithdrawalRate,
			GrowthRate:     config.FI.GrowthRate,
		},
		fiTarget: config.FI.Target,
		history:  models.DefaultHistory(),
		logger:   logger,
	}
	s.saver = newDebouncer(saveDebounce, func(p *models.Portfolio) {
		if err := s.SavePortfolio(context.Background(), p); err != nil {
			logger.Error().Err(err).Msg("Debounced portfolio save failed")
		}
	})
	return s
}

// GetPortfolio loads the current portfolio. Degrades gracefully: a missing
// or structurally broken primary record falls back to the backup snapshot
// (restoring it as primary), and failing that to the default portfolio.
// Loading never blocks on a bad read.
func (s *Service) GetPortfolio(ctx context.Context) (*models.Portfolio, error) {
	if p, err := s.readPortfolio(ctx, portfolioKey); err == nil {
		return p, nil
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		s.logger.Warn().Err(err).Msg("Primary portfolio record unreadable, trying backup")
	}

	if p, err := s.readPortfolio(ctx, backupKey); err == nil {
		s.logger.Info().Msg("Portfolio restored from backup snapshot")
		// Re-establish the primary so the next read doesn't depend on the backup.
		if data, merr := json.MarshalIndent(p, "", "  "); merr == nil {
			if serr := s.storage.Set(ctx, portfolioKey, data); serr != nil {
				s.logger.Warn().Err(serr).Msg("Failed to re-establish primary portfolio record")
			}
		}
		return p, nil
	}

	s.logger.Info().Msg("No stored portfolio, using defaults")
	return models.DefaultPortfolio(), nil
}

// readPortfolio loads and shape-checks one record. The shape check requires
// all four bucket fields before the document is trusted.
func (s *Service) readPortfolio(ctx context.Context, key string) (*models.Portfolio, error) {
	data, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := models.CheckPortfolioShape(data); err != nil {
		return nil, fmt.Errorf("record %q failed shape check: %w", key, err)
	}
	var p models.Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse record %q: %w", key, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("record %q failed validation: %w", key, err)
	}
	return &p, nil
}

// SavePortfolio validates and persists the portfolio wholesale. The prior
// record is kept under the backup key so a failed or corrupted write can be
// rolled back on the next load.
func (s *Service) SavePortfolio(ctx context.Context, p *models.Portfolio) error {
	if err := p.Validate(); err != nil {
		return err
	}

	// Snapshot the prior record before overwriting. Best effort: a missing
	// primary just means there is nothing to back up yet.
	if prev, err := s.storage.Get(ctx, portfolioKey); err == nil {
		if err := s.storage.Set(ctx, backupKey, prev); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to write backup snapshot")
		}
	}

	p.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}
	if err := s.storage.Set(ctx, portfolioKey, data); err != nil {
		return fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.logger.Debug().Float64("core", p.Core).Float64("growth", p.Growth).
		Float64("crypto", p.Crypto).Float64("hedge", p.Hedge).Msg("Portfolio saved")
	return nil
}

// QueueSave schedules a debounced save of the portfolio. Invalid records
// are rejected immediately rather than queued.
func (s *Service) QueueSave(p *models.Portfolio) {
	if err := p.Validate(); err != nil {
		s.logger.Warn().Err(err).Msg("Rejected invalid portfolio edit")
		return
	}
	s.saver.queue(p)
}

// GetSettings loads the persisted settings, falling back to defaults
// derived from configuration.
func (s *Service) GetSettings(ctx context.Context) (*models.Settings, error) {
	data, err := s.storage.Get(ctx, settingsKey)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return &models.Settings{FITarget: s.fiTarget}, nil
		}
		s.logger.Warn().Err(err).Msg("Settings unreadable, using defaults")
		return &models.Settings{FITarget: s.fiTarget}, nil
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Warn().Err(err).Msg("Settings record corrupt, using defaults")
		return &models.Settings{FITarget: s.fiTarget}, nil
	}
	if settings.FITarget == 0 {
		settings.FITarget = s.fiTarget
	}
	return &settings, nil
}

// SaveSettings validates and persists the settings.
func (s *Service) SaveSettings(ctx context.Context, settings *models.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	settings.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.storage.Set(ctx, settingsKey, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Snapshot assembles the full dashboard view: totals, allocations, health
// issues, FI progress, and historical metrics.
func (s *Service) Snapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	p, err := s.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}

	total, err := calc.Total(p)
	if err != nil {
		return nil, err
	}
	allocs, err := calc.Allocations(p)
	if err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	fi, err := calc.FIProgress(total, settings.FITarget, s.fi)
	if err != nil {
		return nil, err
	}

	metrics, err := calc.HistoricalMetrics(s.history, total)
	if err != nil {
		return nil, err
	}

	return &models.DashboardSnapshot{
		Portfolio:   p,
		Total:       total,
		Allocations: allocs,
		Issues:      calc.EvaluateHealth(allocs, total, s.thresholds),
		FI:          fi,
		History:     metrics,
		GeneratedAt: time.Now(),
	}, nil
}

// History returns the fixed reference series.
func (s *Service) History() []models.HistoricalEntry {
	return s.history
}

// Close flushes any pending debounced save.
func (s *Service) Close() {
	s.saver.close()
}
