package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminUC(products *memProductRepo, categories *memCategoryRepo, outbox *memOutboxRepo, images *fakeImagesInfra) *AdminUseCase {
	return NewAdminUC(products, categories, outbox, images, passthroughTxManager{}, nopLogger{})
}

func TestCreateProductEmitsOutboxEvent(t *testing.T) {
	products := newMemProductRepo()
	outbox := newMemOutboxRepo()
	images := &fakeImagesInfra{}
	uc := newAdminUC(products, newMemCategoryRepo(), outbox, images)

	created, err := uc.CreateProduct(context.Background(), &CreateProductReq{
		Name:   "Гель для посуды",
		Price:  49900,
		Weight: "500 мл",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, ProductCreated, outbox.events[0].EventType)
	assert.Equal(t, created.ID, outbox.events[0].EntityID)
	assert.Equal(t, Pending, outbox.events[0].Status)
}

func TestCreateProductValidation(t *testing.T) {
	uc := newAdminUC(newMemProductRepo(), newMemCategoryRepo(), newMemOutboxRepo(), &fakeImagesInfra{})

	tests := []struct {
		name string
		req  *CreateProductReq
		want error
	}{
		{"empty name", &CreateProductReq{Name: " ", Price: 100, Weight: "1 кг"}, e.ErrProductNameRequired},
		{"zero price", &CreateProductReq{Name: "X", Price: 0, Weight: "1 кг"}, e.ErrInvalidPrice},
		{"empty weight", &CreateProductReq{Name: "X", Price: 100, Weight: ""}, e.ErrWeightRequired},
		{"non-positive discount", &CreateProductReq{Name: "X", Price: 100, DiscountPrice: ptr(0), Weight: "1 кг"}, e.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateProduct(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestCreateProductCleansUpImageOnStorageFailure(t *testing.T) {
	products := newMemProductRepo()
	products.createErr = errors.New("insert failed")
	images := &fakeImagesInfra{nextKey: "X/img.jpg"}
	uc := newAdminUC(products, newMemCategoryRepo(), newMemOutboxRepo(), images)

	_, err := uc.CreateProduct(context.Background(), &CreateProductReq{
		Name:   "X",
		Price:  100,
		Weight: "1 кг",
		Image:  NewImageUpload([]byte("data"), "image/jpeg", 4, "img.jpg"),
	})
	require.Error(t, err)

	// Загруженный до транзакции объект зачищается компенсацией
	assert.Equal(t, []string{"X/img.jpg"}, images.cleanups)
}

func TestUpdateProductReplacesImageAfterCommit(t *testing.T) {
	products := newMemProductRepo()
	oldKey := "X/old.jpg"
	products.add(domain.Product{ID: 1, Name: "X", Price: 100, Weight: "1 кг", Image: &oldKey})

	images := &fakeImagesInfra{nextKey: "X/new.jpg"}
	uc := newAdminUC(products, newMemCategoryRepo(), newMemOutboxRepo(), images)

	updated, err := uc.UpdateProduct(context.Background(), &UpdateProductReq{
		ID:     1,
		Name:   "X",
		Price:  200,
		Weight: "1 кг",
		Image:  NewImageUpload([]byte("data"), "image/jpeg", 4, "new.jpg"),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Image)
	assert.Equal(t, "X/new.jpg", *updated.Image)
	// Старое изображение удаляется только после успешного коммита
	assert.Equal(t, []string{oldKey}, images.cleanups)
}

func TestUpdateProductKeepsImageWhenNoneUploaded(t *testing.T) {
	products := newMemProductRepo()
	oldKey := "X/old.jpg"
	products.add(domain.Product{ID: 1, Name: "X", Price: 100, Weight: "1 кг", Image: &oldKey})

	images := &fakeImagesInfra{}
	uc := newAdminUC(products, newMemCategoryRepo(), newMemOutboxRepo(), images)

	updated, err := uc.UpdateProduct(context.Background(), &UpdateProductReq{
		ID:     1,
		Name:   "X",
		Price:  300,
		Weight: "1 кг",
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Image)
	assert.Equal(t, oldKey, *updated.Image)
	assert.Empty(t, images.cleanups)
}

func TestDeleteProductNotFound(t *testing.T) {
	uc := newAdminUC(newMemProductRepo(), newMemCategoryRepo(), newMemOutboxRepo(), &fakeImagesInfra{})

	err := uc.DeleteProduct(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrNotFound))
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	products := newMemProductRepo()
	categories := newMemCategoryRepo()
	outbox := newMemOutboxRepo()

	cat := categories.add("Чистящие средства")
	products.add(domain.Product{ID: 1, Name: "A", Price: 100, Weight: "1", CategoryID: ptr(cat.ID)})
	products.add(domain.Product{ID: 2, Name: "B", Price: 100, Weight: "1", CategoryID: ptr(cat.ID)})
	products.add(domain.Product{ID: 3, Name: "C", Price: 100, Weight: "1"})

	uc := newAdminUC(products, categories, outbox, &fakeImagesInfra{})

	res, err := uc.DeleteCategory(context.Background(), cat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.UpdatedProductsCount)

	for _, p := range products.products {
		assert.Nil(t, p.CategoryID)
	}
	assert.Empty(t, categories.categories)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, CategoryDeleted, outbox.events[0].EventType)
}

func TestDeleteCategoryStopsWhenDetachFails(t *testing.T) {
	products := newMemProductRepo()
	products.detachErr = errors.New("detach failed")
	categories := newMemCategoryRepo()
	cat := categories.add("Чистящие средства")

	uc := newAdminUC(products, categories, newMemOutboxRepo(), &fakeImagesInfra{})

	_, err := uc.DeleteCategory(context.Background(), cat.ID)
	require.Error(t, err)

	// При сбое отвязки удаление категории не должно даже начинаться
	assert.Empty(t, categories.deleteCalls)
	assert.Len(t, categories.categories, 1)
}

func TestRenameCategoryValidation(t *testing.T) {
	uc := newAdminUC(newMemProductRepo(), newMemCategoryRepo(), newMemOutboxRepo(), &fakeImagesInfra{})

	_, err := uc.RenameCategory(context.Background(), 1, "  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrCategoryNameRequired))
}

func TestRenameCategoryNotFound(t *testing.T) {
	uc := newAdminUC(newMemProductRepo(), newMemCategoryRepo(), newMemOutboxRepo(), &fakeImagesInfra{})

	_, err := uc.RenameCategory(context.Background(), 99, "Новое имя")
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrCategoryNotFound))
}
