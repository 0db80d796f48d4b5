package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSettingsRepoBannersRoundtrip(t *testing.T) {
	repo := NewSettingsRepo(t.TempDir())
	ctx := context.Background()

	// До первой записи — нулевые значения, а не ошибка
	banners, err := repo.GetBanners(ctx)
	require.NoError(t, err)
	assert.Nil(t, banners.Banner1URL)
	assert.Nil(t, banners.Banner2URL)

	want := &domain.Banners{
		Banner1URL: strPtr("/static/banners/summer.png"),
		Banner2URL: strPtr("/static/banners/sale.png"),
	}
	require.NoError(t, repo.SaveBanners(ctx, want))

	got, err := repo.GetBanners(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsRepoContactInfoRoundtrip(t *testing.T) {
	repo := NewSettingsRepo(t.TempDir())
	ctx := context.Background()

	want := &domain.ContactInfo{
		Phone:   "+7 900 000-00-00",
		Email:   "shop@example.com",
		Address: "г. Москва, ул. Примерная, 1",
	}
	require.NoError(t, repo.SaveContactInfo(ctx, want))

	got, err := repo.GetContactInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsRepoCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "settings")
	repo := NewSettingsRepo(dir)

	require.NoError(t, repo.SaveBanners(context.Background(), &domain.Banners{}))

	banners, err := repo.GetBanners(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, banners)
}
