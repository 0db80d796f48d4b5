package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

const (
	bannersFile     = "promotional_banners.json"
	contactInfoFile = "contact_info.json"
)

// SettingsRepo хранит баннеры и контактные данные в плоских JSON-файлах.
// Запись идет через временный файл с переименованием, чтобы читатель никогда
// не увидел наполовину записанный документ.
type SettingsRepo struct {
	dir string
	mu  sync.RWMutex
}

func NewSettingsRepo(dir string) *SettingsRepo {
	return &SettingsRepo{dir: dir}
}

func (s *SettingsRepo) GetBanners(_ context.Context) (*domain.Banners, error) {
	var banners domain.Banners
	if err := s.read(bannersFile, &banners); err != nil {
		return nil, err
	}

	return &banners, nil
}

func (s *SettingsRepo) SaveBanners(_ context.Context, banners *domain.Banners) error {
	return s.write(bannersFile, banners)
}

func (s *SettingsRepo) GetContactInfo(_ context.Context) (*domain.ContactInfo, error) {
	var info domain.ContactInfo
	if err := s.read(contactInfoFile, &info); err != nil {
		return nil, err
	}

	return &info, nil
}

func (s *SettingsRepo) SaveContactInfo(_ context.Context, info *domain.ContactInfo) error {
	return s.write(contactInfoFile, info)
}

// read декодирует JSON-файл в target. Отсутствующий файл — не ошибка:
// target остается нулевым значением (пустые баннеры/контакты).
func (s *SettingsRepo) read(name string, target any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SettingsRepo) write(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
