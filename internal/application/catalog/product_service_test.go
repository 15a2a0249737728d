package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProductRepo) FindByCategory(_ context.Context, categoryID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *memProductRepo) CheckAvailable(_ context.Context, id uuid.UUID, quantity int) (bool, error) {
	p, ok := r.products[id]
	return ok && p.IsActive && p.StockQuantity >= quantity, nil
}

func (r *memProductRepo) ReserveStock(context.Context, uuid.UUID, int) error { return nil }

func (r *memProductRepo) ReleaseStock(context.Context, uuid.UUID, int) error { return nil }

type memCategoryRepo struct {
	categories map[uuid.UUID]*catalog.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[uuid.UUID]*catalog.Category)}
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *memCategoryRepo) FindAll(context.Context, shared.Filter) ([]catalog.Category, error) {
	var out []catalog.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCategoryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCategoryRepo) Save(_ context.Context, c *catalog.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

// memReviewRepo answers only the rating summary; product reads are the
// sole review dependency of the catalog service.
type memReviewRepo struct {
	ratings map[uuid.UUID][]int
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{ratings: make(map[uuid.UUID][]int)}
}

func (r *memReviewRepo) FindByID(context.Context, uuid.UUID) (*review.Review, error) {
	return nil, shared.ErrNotFound
}

func (r *memReviewRepo) FindByProduct(context.Context, uuid.UUID, shared.Filter) ([]review.Review, error) {
	return nil, nil
}

func (r *memReviewRepo) FindByProductAndUser(context.Context, uuid.UUID, uuid.UUID) (*review.Review, error) {
	return nil, shared.ErrNotFound
}

func (r *memReviewRepo) FindByUser(context.Context, uuid.UUID, shared.Filter) ([]review.Review, error) {
	return nil, nil
}

func (r *memReviewRepo) Save(context.Context, *review.Review) error { return nil }

func (r *memReviewRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *memReviewRepo) AverageRating(_ context.Context, productID uuid.UUID) (float64, int64, error) {
	ratings := r.ratings[productID]
	if len(ratings) == 0 {
		return 0, 0, nil
	}
	var sum int
	for _, v := range ratings {
		sum += v
	}
	return float64(sum) / float64(len(ratings)), int64(len(ratings)), nil
}

func newProductTestSetup(t *testing.T) (*ProductService, *memProductRepo, *memCategoryRepo, *memReviewRepo, *catalog.Category) {
	t.Helper()
	products := newMemProductRepo()
	categories := newMemCategoryRepo()
	reviews := newMemReviewRepo()

	category, err := catalog.NewCategory("Electronics", "")
	require.NoError(t, err)
	require.NoError(t, categories.Save(t.Context(), category))

	return NewProductService(products, categories, reviews), products, categories, reviews, category
}

func TestProductCreate(t *testing.T) {
	t.Run("creates an active product", func(t *testing.T) {
		svc, _, _, _, category := newProductTestSetup(t)

		resp, err := svc.Create(t.Context(), CreateProductRequest{
			Name:          "Widget",
			Description:   "A widget",
			Price:         "19.99",
			StockQuantity: 10,
			CategoryID:    category.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, "Widget", resp.Name)
		assert.Equal(t, "19.99", resp.Price)
		assert.Equal(t, 10, resp.StockQuantity)
		assert.True(t, resp.IsActive)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		svc, _, _, _, _ := newProductTestSetup(t)

		_, err := svc.Create(t.Context(), CreateProductRequest{
			Name:       "Widget",
			Price:      "19.99",
			CategoryID: uuid.New(),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects an unparseable price", func(t *testing.T) {
		svc, _, _, _, category := newProductTestSetup(t)

		_, err := svc.Create(t.Context(), CreateProductRequest{
			Name:       "Widget",
			Price:      "cheap",
			CategoryID: category.ID,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		svc, _, _, _, category := newProductTestSetup(t)

		_, err := svc.Create(t.Context(), CreateProductRequest{
			Name:       "Widget",
			Price:      "-1.00",
			CategoryID: category.ID,
		})
		assert.Error(t, err)
	})
}

func TestProductGetByID(t *testing.T) {
	svc, _, _, reviews, category := newProductTestSetup(t)

	created, err := svc.Create(t.Context(), CreateProductRequest{
		Name:       "Widget",
		Price:      "19.99",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	t.Run("includes the review summary", func(t *testing.T) {
		reviews.ratings[created.ID] = []int{5, 3}

		resp, err := svc.GetByID(t.Context(), created.ID)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, resp.AverageRating, 0.001)
		assert.Equal(t, int64(2), resp.ReviewCount)
	})

	t.Run("unknown product reads as absent", func(t *testing.T) {
		_, err := svc.GetByID(t.Context(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductUpdate(t *testing.T) {
	svc, _, _, _, category := newProductTestSetup(t)

	created, err := svc.Create(t.Context(), CreateProductRequest{
		Name:          "Widget",
		Price:         "19.99",
		StockQuantity: 5,
		CategoryID:    category.ID,
	})
	require.NoError(t, err)

	t.Run("replaces catalog fields", func(t *testing.T) {
		resp, err := svc.Update(t.Context(), created.ID, UpdateProductRequest{
			Name:          "Widget Mk II",
			Price:         "24.99",
			StockQuantity: 8,
			CategoryID:    category.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Widget Mk II", resp.Name)
		assert.Equal(t, "24.99", resp.Price)
		assert.Equal(t, 8, resp.StockQuantity)
	})

	t.Run("rejects moving to an unknown category", func(t *testing.T) {
		_, err := svc.Update(t.Context(), created.ID, UpdateProductRequest{
			Name:       "Widget",
			Price:      "19.99",
			CategoryID: uuid.New(),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductActivation(t *testing.T) {
	svc, products, _, _, category := newProductTestSetup(t)

	created, err := svc.Create(t.Context(), CreateProductRequest{
		Name:       "Widget",
		Price:      "19.99",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(t.Context(), created.ID))
	assert.False(t, products.products[created.ID].IsActive)

	require.NoError(t, svc.Activate(t.Context(), created.ID))
	assert.True(t, products.products[created.ID].IsActive)
}

func TestCheckAvailability(t *testing.T) {
	svc, _, _, _, category := newProductTestSetup(t)

	created, err := svc.Create(t.Context(), CreateProductRequest{
		Name:          "Widget",
		Price:         "19.99",
		StockQuantity: 3,
		CategoryID:    category.ID,
	})
	require.NoError(t, err)

	t.Run("reports coverable quantities", func(t *testing.T) {
		resp, err := svc.CheckAvailability(t.Context(), created.ID, 3)
		require.NoError(t, err)
		assert.True(t, resp.Available)
	})

	t.Run("reports uncoverable quantities", func(t *testing.T) {
		resp, err := svc.CheckAvailability(t.Context(), created.ID, 4)
		require.NoError(t, err)
		assert.False(t, resp.Available)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		_, err := svc.CheckAvailability(t.Context(), created.ID, 0)
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})
}
