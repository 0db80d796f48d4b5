package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	trm "github.com/avito-tech/go-transaction-manager/trm/v2"
)

// Фейки для тестов usecase-слоя: продуктовый репозиторий держит данные
// в памяти и обязан давать ту же семантику, что SQL-трансляция фильтра.

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

// passthroughTxManager выполняет функцию без реальной транзакции.
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memProductRepo — ин-мемори репозиторий товаров. Выборка построена на
// ProductFilter.Matches, сортировка и пагинация повторяют контракт SQL-слоя.
type memProductRepo struct {
	products   []domain.Product
	categories map[int64]string
	nextID     int64

	detachErr error
	deleteErr error
	createErr error

	detachCalls []int64
	deleteCalls []int64
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{categories: map[int64]string{}, nextID: 1}
}

func (m *memProductRepo) add(p domain.Product) domain.Product {
	if p.ID == 0 {
		p.ID = m.nextID
	}
	if p.ID >= m.nextID {
		m.nextID = p.ID + 1
	}
	m.products = append(m.products, p)
	return p
}

func (m *memProductRepo) matched(filter *ProductFilter) []domain.Product {
	var out []domain.Product
	for _, p := range m.products {
		if filter.Matches(&p) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch filter.Sort {
		case SortPriceAsc:
			pi, pj := out[i].EffectivePrice(), out[j].EffectivePrice()
			if pi != pj {
				return pi < pj
			}
		case SortPriceDesc:
			pi, pj := out[i].EffectivePrice(), out[j].EffectivePrice()
			if pi != pj {
				return pi > pj
			}
		}
		return out[i].ID < out[j].ID
	})

	return out
}

func (m *memProductRepo) List(_ context.Context, filter *ProductFilter) ([]ProductListItem, error) {
	matched := m.matched(filter)

	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]ProductListItem, 0, end-start)
	for _, p := range matched[start:end] {
		item := ProductListItem{Product: p}
		if p.CategoryID != nil {
			if name, ok := m.categories[*p.CategoryID]; ok {
				item.CategoryName = &name
			}
		}
		items = append(items, item)
	}

	return items, nil
}

func (m *memProductRepo) Count(_ context.Context, filter *ProductFilter) (int64, error) {
	return int64(len(m.matched(filter))), nil
}

func (m *memProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (m *memProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	created := m.add(*product)
	return &created, nil
}

func (m *memProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	for i, p := range m.products {
		if p.ID == product.ID {
			m.products[i] = *product
			cp := *product
			return &cp, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (m *memProductRepo) Delete(_ context.Context, id int64) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return e.ErrProductNotFound
}

func (m *memProductRepo) DetachCategory(_ context.Context, categoryID int64) (int64, error) {
	m.detachCalls = append(m.detachCalls, categoryID)
	if m.detachErr != nil {
		return 0, m.detachErr
	}
	var detached int64
	for i, p := range m.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			m.products[i].CategoryID = nil
			detached++
		}
	}
	return detached, nil
}

func (m *memProductRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

type memCategoryRepo struct {
	categories []domain.Category
	nextID     int64

	deleteErr   error
	deleteCalls []int64
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{nextID: 1}
}

func (m *memCategoryRepo) add(name string) domain.Category {
	c := domain.Category{ID: m.nextID, Name: name}
	m.nextID++
	m.categories = append(m.categories, c)
	return c
}

func (m *memCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(m.categories))
	copy(out, m.categories)
	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := caseFold(out[i].Name), caseFold(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, e.ErrCategoryNotFound
}

func (m *memCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	created := m.add(category.Name)
	return &created, nil
}

func (m *memCategoryRepo) Rename(_ context.Context, id int64, name string) (*domain.Category, error) {
	for i, c := range m.categories {
		if c.ID == id {
			m.categories[i].Name = name
			cp := m.categories[i]
			return &cp, nil
		}
	}
	return nil, e.ErrCategoryNotFound
}

func (m *memCategoryRepo) Delete(_ context.Context, id int64) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, c := range m.categories {
		if c.ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return e.ErrCategoryNotFound
}

type memAdminRepo struct {
	admins []domain.Admin
	nextID int64
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{nextID: 1}
}

func (m *memAdminRepo) GetByID(_ context.Context, id int64) (*domain.Admin, error) {
	for _, a := range m.admins {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, e.ErrNotFound
}

func (m *memAdminRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	for _, a := range m.admins {
		if a.Username == username {
			cp := a
			return &cp, nil
		}
	}
	return nil, e.ErrNotFound
}

func (m *memAdminRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.admins)), nil
}

func (m *memAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	cp := *admin
	cp.ID = m.nextID
	m.nextID++
	m.admins = append(m.admins, cp)
	return &cp, nil
}

type memOutboxRepo struct {
	events    []*OutboxEvent
	nextID    int64
	createErr error
}

func newMemOutboxRepo() *memOutboxRepo {
	return &memOutboxRepo{nextID: 1}
}

func (m *memOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	cp := *event
	cp.ID = m.nextID
	m.nextID++
	m.events = append(m.events, &cp)
	return &cp, nil
}

func (m *memOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*OutboxEvent, error) {
	var out []*OutboxEvent
	for _, ev := range m.events {
		if ev.Status == Pending && len(out) < limit {
			ev.Status = Processing
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	for _, ev := range m.events {
		if ev.ID == id {
			ev.Status = Processed
			return nil
		}
	}
	return e.ErrNotFound
}

func (m *memOutboxRepo) MarkAsFailed(_ context.Context, id int64) error {
	for _, ev := range m.events {
		if ev.ID == id {
			ev.Status = Failed
			return nil
		}
	}
	return e.ErrNotFound
}

type memTokenRepo struct {
	revoked   map[string]bool
	revokeErr error
	checkErr  error
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{revoked: map[string]bool{}}
}

func (m *memTokenRepo) Revoke(_ context.Context, token string, _ time.Duration) error {
	if m.revokeErr != nil {
		return m.revokeErr
	}
	m.revoked[token] = true
	return nil
}

func (m *memTokenRepo) IsRevoked(_ context.Context, token string) (bool, error) {
	if m.checkErr != nil {
		return false, m.checkErr
	}
	return m.revoked[token], nil
}

// fakeImagesInfra пишет загрузки и зачистки, ничего не делая.
type fakeImagesInfra struct {
	uploads   []string
	cleanups  []string
	uploadErr error
	nextKey   string
}

func (f *fakeImagesInfra) UploadImage(_ context.Context, req *UploadImageReq) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	key := f.nextKey
	if key == "" {
		key = req.ProductName + "/" + req.Image.Name
	}
	f.uploads = append(f.uploads, key)
	return key, nil
}

func (f *fakeImagesInfra) CleanupImages(keys []string) {
	f.cleanups = append(f.cleanups, keys...)
}

func caseFold(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= 'A' && r <= 'Z':
			out[i] = r + ('a' - 'A')
		case r >= 'А' && r <= 'Я':
			out[i] = r + ('а' - 'А')
		}
	}
	return string(out)
}
