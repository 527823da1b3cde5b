package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/marketeer/internal/models"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/transfer"
)

type SetupService interface {
	GetSetup(ctx context.Context, userID int64) (*models.Setup, error)
	SaveSetup(ctx context.Context, userID int64, save *transfer.SetupSave) (*models.Setup, error)
}

type setupService struct {
	sr repository.SetupRepository
}

func NewSetupService(sr repository.SetupRepository) SetupService {
	return &setupService{
		sr: sr,
	}
}

func (s *setupService) GetSetup(ctx context.Context, userID int64) (*models.Setup, error) {
	setup, isExist, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !isExist {
		slog.Info("setup not found", "user_id", userID)
		return nil, ErrNotFound
	}

	return setup, nil
}

// SaveSetup validates required product fields and upserts; nothing is
// persisted when validation fails.
func (s *setupService) SaveSetup(ctx context.Context, userID int64, save *transfer.SetupSave) (*models.Setup, error) {
	if err := save.Validate(); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	setup := &models.Setup{
		UserID:         userID,
		ProductName:    save.ProductName,
		Description:    save.Description,
		TargetAudience: save.TargetAudience,
		KeyFeatures:    save.KeyFeatures,
		TonePreference: save.TonePreference,
		CustomTone:     save.CustomTone,
		XHandle:        save.XHandle,
	}
	if setup.KeyFeatures == nil {
		setup.KeyFeatures = []string{}
	}

	id, err := s.sr.Upsert(ctx, setup)
	if err != nil {
		return nil, fmt.Errorf("error saving setup: %w", err)
	}

	setup.ID = id
	return setup, nil
}
