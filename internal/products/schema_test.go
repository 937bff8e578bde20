package products

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/dbtest"
)

func TestSchemaProbeDetectsColumns(t *testing.T) {
	cases := []struct {
		name string
		cols dbtest.ProductColumns
		want Capabilities
	}{
		{"full", dbtest.AllColumns, Capabilities{HasStatus: true, HasSoldAt: true, HasUpdatedAt: true}},
		{"legacy", dbtest.ProductColumns{}, Capabilities{}},
		{"statusOnly", dbtest.ProductColumns{Status: true}, Capabilities{HasStatus: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			probe := NewSchemaProbe(dbtest.Open(t, tc.cols), time.Minute)
			caps, err := probe.Capabilities(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, caps)
		})
	}
}

func TestSchemaProbeCachesUntilTTL(t *testing.T) {
	conn := dbtest.Open(t, dbtest.ProductColumns{})
	probe := NewSchemaProbe(conn, time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	probe.now = func() time.Time { return clock }
	ctx := context.Background()

	caps, err := probe.Capabilities(ctx)
	require.NoError(t, err)
	assert.False(t, caps.HasSoldAt)

	require.NoError(t, conn.Exec("ALTER TABLE products ADD COLUMN sold_at DATETIME").Error)

	caps, err = probe.Capabilities(ctx)
	require.NoError(t, err)
	assert.False(t, caps.HasSoldAt, "cached value should be served inside the TTL")

	clock = clock.Add(2 * time.Minute)
	caps, err = probe.Capabilities(ctx)
	require.NoError(t, err)
	assert.True(t, caps.HasSoldAt)
}

func TestSchemaProbeInvalidateAndRefresh(t *testing.T) {
	conn := dbtest.Open(t, dbtest.ProductColumns{})
	probe := NewSchemaProbe(conn, 0)
	ctx := context.Background()

	_, err := probe.Capabilities(ctx)
	require.NoError(t, err)
	require.NoError(t, conn.Exec("ALTER TABLE products ADD COLUMN status TEXT NOT NULL DEFAULT 'available'").Error)

	caps, err := probe.Capabilities(ctx)
	require.NoError(t, err)
	assert.False(t, caps.HasStatus)

	probe.Invalidate()
	caps, err = probe.Capabilities(ctx)
	require.NoError(t, err)
	assert.True(t, caps.HasStatus)

	require.NoError(t, conn.Exec("ALTER TABLE products ADD COLUMN updated_at DATETIME").Error)
	caps, err = probe.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, caps.HasUpdatedAt)
}

func TestSchemaProbeMissingTableIsNotCached(t *testing.T) {
	conn := dbtest.Open(t, dbtest.AllColumns)
	require.NoError(t, conn.Exec("DROP TABLE products").Error)
	probe := NewSchemaProbe(conn, time.Minute)

	_, err := probe.Capabilities(context.Background())
	require.Error(t, err)
	assert.False(t, probe.resolved)
}

func TestFixedSchema(t *testing.T) {
	want := Capabilities{HasStatus: true}
	probe := FixedSchema(want)

	caps, err := probe.Capabilities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, caps)

	probe.Invalidate()
	caps, err = probe.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, caps)
}

func TestCapabilitiesFromColumnNames(t *testing.T) {
	caps := capabilitiesFrom([]string{"id", "SOLD_AT", "status", "name"})
	assert.Equal(t, Capabilities{HasStatus: true, HasSoldAt: true}, caps)
	assert.Equal(t, Capabilities{}, capabilitiesFrom(nil))
}

func TestSchemaProbeDoesNotCacheFailures(t *testing.T) {
	conn := dbtest.Open(t, dbtest.AllColumns)
	probe := NewSchemaProbe(conn, 0)
	ctx := context.Background()

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = probe.Refresh(ctx)
	require.Error(t, err)

	_, err = probe.Capabilities(ctx)
	require.Error(t, err, "a failed lookup must not leave a cached snapshot")
}
