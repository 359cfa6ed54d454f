package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mfletcher/nestegg/internal/common"
	"github.com/mfletcher/nestegg/internal/models"
)

// Export produces the pretty-printed bundle document: portfolio, settings,
// timestamp, version, and app identifier.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	p, err := s.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	bundle := models.ExportBundle{
		Portfolio:     p,
		Settings:      settings,
		Timestamp:     time.Now(),
		Version:       common.GetVersion(),
		AppIdentifier: models.AppIdentifier,
	}

	data, err := json.MarshalIndent(&bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export bundle: %w", err)
	}
	return data, nil
}

// Import parses a bundle document and applies the embedded portfolio and
// settings through the same validation as a manual edit. Either may be
// absent; a bundle carrying neither is rejected.
func (s *Service) Import(ctx context.Context, data []byte) (*models.ExportBundle, error) {
	var bundle models.ExportBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("%w: import document is not valid JSON", models.ErrInvalidInput)
	}

	if bundle.Portfolio == nil && bundle.Settings == nil {
		return nil, fmt.Errorf("%w: bundle carries neither portfolio nor settings", models.ErrMissingField)
	}

	if bundle.Portfolio != nil {
		if err := s.SavePortfolio(ctx, bundle.Portfolio); err != nil {
			return nil, fmt.Errorf("imported portfolio rejected: %w", err)
		}
	}

	if bundle.Settings != nil {
		if err := s.SaveSettings(ctx, bundle.Settings); err != nil {
			return nil, fmt.Errorf("imported settings rejected: %w", err)
		}
	}

	s.logger.Info().
		Bool("portfolio", bundle.Portfolio != nil).
		Bool("settings", bundle.Settings != nil).
		Str("source_version", bundle.Version).
		Msg("Bundle imported")

	return &bundle, nil
}
