package usecase

import (
	"context"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/pkg/e"
)

// SettingsUseCase — баннеры и контактные данные магазина поверх файлового
// хранилища.
type SettingsUseCase struct {
	settingsRepo SettingsRepository
}

func NewSettingsUC(settingsRepo SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settingsRepo: settingsRepo}
}

func (s *SettingsUseCase) GetBanners(ctx context.Context) (*domain.Banners, error) {
	const op = "SettingsUseCase.GetBanners"

	banners, err := s.settingsRepo.GetBanners(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return banners, nil
}

func (s *SettingsUseCase) SaveBanners(ctx context.Context, banners *domain.Banners) error {
	const op = "SettingsUseCase.SaveBanners"

	if err := s.settingsRepo.SaveBanners(ctx, banners); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (s *SettingsUseCase) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	const op = "SettingsUseCase.GetContactInfo"

	info, err := s.settingsRepo.GetContactInfo(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return info, nil
}

func (s *SettingsUseCase) SaveContactInfo(ctx context.Context, info *domain.ContactInfo) error {
	const op = "SettingsUseCase.SaveContactInfo"

	if err := s.settingsRepo.SaveContactInfo(ctx, info); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
