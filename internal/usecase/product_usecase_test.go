package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/wendynovel0/prueba/internal/domain/model"
	repo "github.com/wendynovel0/prueba/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductUC(products *ProductRepoMock, brands *BrandRepoMock, audits *AuditRepoMock) *ProductUsecase {
	_, interceptor := newAuditStack(audits)
	uc := NewProductUsecase(products, brands, interceptor)
	uc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	return uc
}

func TestProduct_UpdateNonexistentNoAudit(t *testing.T) {
	products := new(ProductRepoMock)
	brands := new(BrandRepoMock)
	audits := new(AuditRepoMock)
	uc := newProductUC(products, brands, audits)

	products.On("FindByID", mock.Anything, int64(9999)).Return(model.Product{}, repo.ErrNotFound)

	name := "Renamed"
	_, err := uc.UpdateProduct(asUser(7), 9999, UpdateProductInput{Name: &name})

	requireStatus(t, err, http.StatusNotFound)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProduct_CreateRecordsSnapshot(t *testing.T) {
	products := new(ProductRepoMock)
	brands := new(BrandRepoMock)
	audits := new(AuditRepoMock)
	stored := captureAudit(audits)
	uc := newProductUC(products, brands, audits)

	brands.On("FindByID", mock.Anything, int64(3)).Return(model.Brand{ID: 3, Name: "Acme", IsActive: true}, nil).Once()
	products.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.Code == "HM-01" && p.BrandID == 3 && p.IsActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Product).ID = 21
	}).Return(nil).Once()

	p, err := uc.CreateProduct(asUser(7), CreateProductInput{Code: " HM-01 ", Name: "Hammer", Price: 12.5, BrandID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(21), p.ID)
	require.NotNil(t, p.Brand)
	assert.Equal(t, "Acme", p.Brand.Name)

	require.Len(t, *stored, 1)
	rec := (*stored)[0]
	assert.Equal(t, "CREATE", rec.ActionType)
	assert.Equal(t, "products", rec.TableAffected)
	assert.Equal(t, int64(21), rec.RecordID)
	assert.Equal(t, "HM-01", decoded(rec.NewValues)["code"])
	assert.Equal(t, 12.5, decoded(rec.NewValues)["price"])
	_, hasBrand := decoded(rec.NewValues)["brand"]
	assert.False(t, hasBrand)
}

func TestProduct_CreateUnknownBrand(t *testing.T) {
	products := new(ProductRepoMock)
	brands := new(BrandRepoMock)
	audits := new(AuditRepoMock)
	uc := newProductUC(products, brands, audits)

	brands.On("FindByID", mock.Anything, int64(77)).Return(model.Brand{}, repo.ErrNotFound).Once()

	_, err := uc.CreateProduct(asUser(7), CreateProductInput{Code: "X", Name: "Thing", BrandID: 77})

	requireStatus(t, err, http.StatusBadRequest)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProduct_UpdateChangesBrand(t *testing.T) {
	products := new(ProductRepoMock)
	brands := new(BrandRepoMock)
	audits := new(AuditRepoMock)
	stored := captureAudit(audits)
	uc := newProductUC(products, brands, audits)

	current := model.Product{ID: 5, Code: "HM-01", Name: "Hammer", Price: 10, BrandID: 3, IsActive: true}
	products.On("FindByID", mock.Anything, int64(5)).Return(current, nil).Once()
	brands.On("FindByID", mock.Anything, int64(4)).Return(model.Brand{ID: 4, Name: "Globex"}, nil).Once()
	products.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.ID == 5 && p.BrandID == 4 && p.Price == 11
	})).Return(nil).Once()

	price := 11.0
	brandID := int64(4)
	p, err := uc.UpdateProduct(asUser(7), 5, UpdateProductInput{Price: &price, BrandID: &brandID})
	require.NoError(t, err)
	assert.Equal(t, "Globex", p.Brand.Name)

	require.Len(t, *stored, 1)
	rec := (*stored)[0]
	assert.Equal(t, "UPDATE", rec.ActionType)
	assert.Equal(t, float64(3), decoded(rec.OldValues)["brand_id"])
	assert.Equal(t, float64(4), decoded(rec.NewValues)["brand_id"])
	assert.Equal(t, float64(10), decoded(rec.OldValues)["price"])
	assert.Equal(t, float64(11), decoded(rec.NewValues)["price"])
	products.AssertExpectations(t)
}

func TestProduct_DeactivateNoNewValues(t *testing.T) {
	products := new(ProductRepoMock)
	brands := new(BrandRepoMock)
	audits := new(AuditRepoMock)
	stored := captureAudit(audits)
	uc := newProductUC(products, brands, audits)

	products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, Code: "HM-01", Name: "Hammer", IsActive: true}, nil).Once()
	products.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return !p.IsActive
	})).Return(nil).Once()

	require.NoError(t, uc.DeactivateProduct(asUser(9), 5))

	require.Len(t, *stored, 1)
	assert.Equal(t, "DEACTIVATE", (*stored)[0].ActionType)
	assert.Nil(t, (*stored)[0].NewValues)
	assert.Equal(t, true, decoded((*stored)[0].OldValues)["is_active"])
}

func TestProduct_ListInvalidRange(t *testing.T) {
	uc := newProductUC(new(ProductRepoMock), new(BrandRepoMock), new(AuditRepoMock))

	start := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.ListProducts(context.Background(), ListProductsInput{StartDate: &start, EndDate: &end})

	requireStatus(t, err, http.StatusBadRequest)
}

func TestProduct_ListPassesFilters(t *testing.T) {
	products := new(ProductRepoMock)
	uc := newProductUC(products, new(BrandRepoMock), new(AuditRepoMock))

	active := true
	products.On("List", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.Search == "ham" && q.IsActive != nil && *q.IsActive
	})).Return([]model.Product{{ID: 1}}, nil).Once()

	items, err := uc.ListProducts(context.Background(), ListProductsInput{Search: "  ham ", IsActive: &active})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestProduct_UpdateRejectsSubCentPrice(t *testing.T) {
	products := new(ProductRepoMock)
	brands := new(BrandRepoMock)
	audits := new(AuditRepoMock)
	uc := newProductUC(products, brands, audits)

	products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, Code: "HM-01", Name: "Hammer", Price: 10, BrandID: 3, IsActive: true}, nil).Once()

	//numeric(10,2) では12.35に丸められてしまう
	price := 12.345
	_, err := uc.UpdateProduct(asUser(7), 5, UpdateProductInput{Price: &price})

	requireStatus(t, err, http.StatusBadRequest)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProduct_SnapshotMatchesStoredPrecision(t *testing.T) {
	products := new(ProductRepoMock)
	brands := new(BrandRepoMock)
	audits := new(AuditRepoMock)
	stored := captureAudit(audits)
	uc := newProductUC(products, brands, audits)
	uc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 123456789, time.UTC) }

	want := time.Date(2024, 6, 1, 9, 0, 0, 123456000, time.UTC)
	products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, Code: "HM-01", Name: "Hammer", Price: 10, BrandID: 3, IsActive: true}, nil).Once()
	products.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.Price == 12.35 && p.UpdatedAt.Equal(want)
	})).Return(nil).Once()

	price := 12.35
	_, err := uc.UpdateProduct(asUser(7), 5, UpdateProductInput{Price: &price})
	require.NoError(t, err)

	require.Len(t, *stored, 1)
	after := decoded((*stored)[0].NewValues)
	assert.Equal(t, 12.35, after["price"])
	assert.Equal(t, want.Format(time.RFC3339Nano), after["updated_at"])
	products.AssertExpectations(t)
}

func TestValidPrice(t *testing.T) {
	for _, ok := range []float64{0, 0.1, 0.3, 12.35, 99999999.99} {
		got, err := validPrice(ok)
		require.NoError(t, err, ok)
		assert.InDelta(t, ok, got, 1e-6)
	}
	for _, bad := range []float64{-1, 12.345, 0.001, 100000000} {
		_, err := validPrice(bad)
		requireStatus(t, err, http.StatusBadRequest)
	}
}
