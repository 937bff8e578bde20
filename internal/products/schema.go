package products

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const productsTable = "products"

// Capabilities records which optional products columns the connected database has.
type Capabilities struct {
	HasStatus    bool
	HasSoldAt    bool
	HasUpdatedAt bool
}

// SchemaProbe resolves Capabilities from the database catalog and caches them.
// A zero TTL keeps the first successful result until Refresh or Invalidate.
type SchemaProbe struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time

	mu         sync.RWMutex
	caps       Capabilities
	resolvedAt time.Time
	resolved   bool

	group singleflight.Group
}

// NewSchemaProbe builds a probe over db.
func NewSchemaProbe(db *gorm.DB, ttl time.Duration) *SchemaProbe {
	return &SchemaProbe{db: db, ttl: ttl, now: time.Now}
}

// FixedSchema returns a probe that always reports caps without touching a database.
func FixedSchema(caps Capabilities) *SchemaProbe {
	return &SchemaProbe{caps: caps, resolved: true, now: time.Now}
}

// Capabilities returns the cached snapshot, resolving it first when missing or stale.
func (p *SchemaProbe) Capabilities(ctx context.Context) (Capabilities, error) {
	p.mu.RLock()
	caps, fresh := p.caps, p.freshLocked()
	p.mu.RUnlock()
	if fresh {
		return caps, nil
	}
	return p.Refresh(ctx)
}

// Refresh re-reads the catalog. Concurrent callers share one lookup.
func (p *SchemaProbe) Refresh(ctx context.Context) (Capabilities, error) {
	if p.db == nil {
		p.mu.RLock()
		defer p.mu.RUnlock()
		return p.caps, nil
	}
	v, err, _ := p.group.Do(productsTable, func() (any, error) {
		caps, err := p.inspect(ctx)
		if err != nil {
			return Capabilities{}, err
		}
		p.mu.Lock()
		p.caps, p.resolvedAt, p.resolved = caps, p.now(), true
		p.mu.Unlock()
		return caps, nil
	})
	if err != nil {
		return Capabilities{}, err
	}
	return v.(Capabilities), nil
}

// Invalidate forces the next Capabilities call to hit the catalog.
func (p *SchemaProbe) Invalidate() {
	if p.db == nil {
		return
	}
	p.mu.Lock()
	p.resolved = false
	p.mu.Unlock()
}

func (p *SchemaProbe) freshLocked() bool {
	if !p.resolved {
		return false
	}
	return p.ttl <= 0 || p.now().Sub(p.resolvedAt) < p.ttl
}

// inspect fails when the products table or its columns cannot be read, so an
// unreachable database is never cached as "no optional columns".
func (p *SchemaProbe) inspect(ctx context.Context) (Capabilities, error) {
	migrator := p.db.WithContext(ctx).Migrator()
	if !migrator.HasTable(productsTable) {
		return Capabilities{}, fmt.Errorf("inspect schema: table %q not found", productsTable)
	}
	columns, err := migrator.ColumnTypes(productsTable)
	if err != nil {
		return Capabilities{}, fmt.Errorf("inspect schema: read %q columns: %w", productsTable, err)
	}
	names := make([]string, 0, len(columns))
	for _, col := range columns {
		names = append(names, col.Name())
	}
	return capabilitiesFrom(names), nil
}

func capabilitiesFrom(columns []string) Capabilities {
	var caps Capabilities
	for _, name := range columns {
		switch strings.ToLower(name) {
		case "status":
			caps.HasStatus = true
		case "sold_at":
			caps.HasSoldAt = true
		case "updated_at":
			caps.HasUpdatedAt = true
		}
	}
	return caps
}
