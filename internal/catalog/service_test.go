package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/aestheticmarket-backend/internal/products"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
)

func seed(t *testing.T, conn *gorm.DB, withStatus bool) {
	t.Helper()
	require.NoError(t, conn.Exec(
		"INSERT INTO sellers (id, full_name, email, phone, password) VALUES (1, 'Ada', 'ada@example.com', '555', 'hash')",
	).Error)

	rows := []struct {
		id        int
		name      string
		aesthetic string
		status    string
		created   string
	}{
		{1, "Old Noir", "noir", "available", "2024-01-01 00:00:00"},
		{2, "Floral Dress", "floral", "available", "2024-01-02 00:00:00"},
		{3, "Sold Noir", "noir", "sold", "2024-01-03 00:00:00"},
		{4, "New Noir", "noir", "available", "2024-01-04 00:00:00"},
		{5, "Blank", "", "available", "2024-01-05 00:00:00"},
	}
	for _, row := range rows {
		if withStatus {
			require.NoError(t, conn.Exec(
				"INSERT INTO products (id, seller_id, name, price, description, image_url, aesthetic, status, created_at) VALUES (?, 1, ?, 10, 'd', 'data:image/png;base64,AA==', ?, ?, ?)",
				row.id, row.name, row.aesthetic, row.status, row.created,
			).Error)
			continue
		}
		require.NoError(t, conn.Exec(
			"INSERT INTO products (id, seller_id, name, price, description, image_url, aesthetic, created_at) VALUES (?, 1, ?, 10, 'd', 'data:image/png;base64,AA==', ?, ?)",
			row.id, row.name, row.aesthetic, row.created,
		).Error)
	}
}

func newTestService(t *testing.T, cols dbtest.ProductColumns) Service {
	t.Helper()
	conn := dbtest.Open(t, cols)
	seed(t, conn, cols.Status)
	svc, err := NewService(NewRepository(conn), products.NewSchemaProbe(conn, 0))
	require.NoError(t, err)
	return svc
}

func names(list []ProductDTO) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Name)
	}
	return out
}

func TestNewServiceValidatesParams(t *testing.T) {
	_, err := NewService(nil, products.FixedSchema(products.Capabilities{}))
	require.Error(t, err)
	_, err = NewService(&Repository{}, nil)
	require.Error(t, err)
}

func TestListProducts(t *testing.T) {
	svc := newTestService(t, dbtest.AllColumns)
	ctx := context.Background()

	all, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Blank", "New Noir", "Floral Dress", "Old Noir"}, names(all))

	explicitAll, err := svc.ListProducts(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, names(all), names(explicitAll))

	noir, err := svc.ListProducts(ctx, "noir")
	require.NoError(t, err)
	assert.Equal(t, []string{"New Noir", "Old Noir"}, names(noir))

	require.NotNil(t, noir[0].SellerName)
	assert.Equal(t, "Ada", *noir[0].SellerName)
	assert.Equal(t, "555", *noir[0].SellerPhone)
	assert.Equal(t, "ada@example.com", *noir[0].SellerEmail)
}

func TestListProductsWithoutStatusColumn(t *testing.T) {
	svc := newTestService(t, dbtest.ProductColumns{})

	list, err := svc.ListProducts(context.Background(), "noir")
	require.NoError(t, err)
	assert.Equal(t, []string{"New Noir", "Sold Noir", "Old Noir"}, names(list))
	for _, p := range list {
		assert.Equal(t, "available", p.Status)
		assert.Nil(t, p.SoldAt)
	}
}

func TestGetProductAnyStatus(t *testing.T) {
	svc := newTestService(t, dbtest.AllColumns)

	p, err := svc.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Sold Noir", p.Name)
	assert.Equal(t, "sold", p.Status)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "Ada", fields["seller_name"])
	assert.Contains(t, fields, "image_url")
	assert.NotContains(t, fields, "password")

	_, err = svc.GetProduct(context.Background(), 99)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestListAesthetics(t *testing.T) {
	svc := newTestService(t, dbtest.AllColumns)

	values, err := svc.ListAesthetics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"floral", "noir"}, values)
}

func TestSchemaFailureIsDependencyError(t *testing.T) {
	conn := dbtest.Open(t, dbtest.AllColumns)
	require.NoError(t, conn.Exec("DROP TABLE products").Error)
	svc, err := NewService(NewRepository(conn), products.NewSchemaProbe(conn, 0))
	require.NoError(t, err)

	_, err = svc.ListProducts(context.Background(), "")
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.CodeOf(err))
}
