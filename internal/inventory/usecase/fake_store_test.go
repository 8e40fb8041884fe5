package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/product"
)

type alertKey struct {
	productID int64
	alertType model.AlertType
}

// fakeStore is a transactional in-memory ledger. WithinTx holds one lock for
// the whole unit of work and commits a private copy only when fn succeeds.
type fakeStore struct {
	mu        sync.Mutex
	inv       map[int64]model.Inventory
	movements []model.StockMovement
	alerts    map[alertKey]model.StockAlert
	nextID    int64

	logErr      error
	readErr     map[int64]error
	blockTx     bool
	lastFilters dto.MovementFilters
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		inv:     map[int64]model.Inventory{},
		alerts:  map[alertKey]model.StockAlert{},
		readErr: map[int64]error{},
	}
}

var _ inventory.Repository = (*fakeStore)(nil)

func (s *fakeStore) seed(inv model.Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	inv.ID = s.nextID
	s.inv[inv.ProductID] = inv
}

func (s *fakeStore) snapshot(productID int64) (model.Inventory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.inv[productID]
	return inv, ok
}

func (s *fakeStore) alert(productID int64, t model.AlertType) (model.StockAlert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[alertKey{productID, t}]
	return a, ok
}

func (s *fakeStore) activeAlerts(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, a := range s.alerts {
		if k.productID == productID && a.Status == model.AlertActive {
			n++
		}
	}
	return n
}

func (s *fakeStore) movementLog() []model.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StockMovement(nil), s.movements...)
}

func (s *fakeStore) GetByProduct(ctx context.Context, productID int64) (*model.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readErr[productID]; err != nil {
		return nil, err
	}
	inv, ok := s.inv[productID]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (s *fakeStore) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Inventory{}
	for _, inv := range s.inv {
		if f != nil && f.LowStock && inv.Quantity > inv.ReorderLevel {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (s *fakeStore) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilters = *f
	out := []model.StockMovement{}
	for i := len(s.movements) - 1; i >= 0; i-- {
		m := s.movements[i]
		if f.ProductID != nil && m.ProductID != *f.ProductID {
			continue
		}
		if f.MovementType != "" && string(m.MovementType) != f.MovementType {
			continue
		}
		out = append(out, m)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) Analytics(ctx context.Context) (*model.InventoryAnalytics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &model.InventoryAnalytics{}
	for _, inv := range s.inv {
		a.TotalProducts++
		a.TotalStock += int64(inv.Quantity)
		a.TotalReserved += int64(inv.ReservedQuantity)
	}
	return a, nil
}

func (s *fakeStore) UpdateSettings(ctx context.Context, productID int64, in *dto.UpdateSettingsInput) (*model.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.inv[productID]
	if !ok {
		return nil, nil
	}
	if in.WarehouseLocation != nil {
		inv.WarehouseLocation = in.WarehouseLocation
	}
	if in.ReorderLevel != nil {
		inv.ReorderLevel = *in.ReorderLevel
	}
	if in.MaxStockLevel != nil {
		inv.MaxStockLevel = *in.MaxStockLevel
	}
	s.inv[productID] = inv
	return &inv, nil
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(tx inventory.Tx) error) error {
	if s.blockTx {
		<-ctx.Done()
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &fakeTx{
		store:     s,
		inv:       make(map[int64]model.Inventory, len(s.inv)),
		alerts:    make(map[alertKey]model.StockAlert, len(s.alerts)),
		movements: append([]model.StockMovement(nil), s.movements...),
		nextID:    s.nextID,
	}
	for k, v := range s.inv {
		tx.inv[k] = v
	}
	for k, v := range s.alerts {
		tx.alerts[k] = v
	}

	if err := fn(tx); err != nil {
		return err
	}

	s.inv, s.alerts, s.movements, s.nextID = tx.inv, tx.alerts, tx.movements, tx.nextID
	return nil
}

type fakeTx struct {
	store     *fakeStore
	inv       map[int64]model.Inventory
	movements []model.StockMovement
	alerts    map[alertKey]model.StockAlert
	nextID    int64
}

func (t *fakeTx) update(productID int64, guard func(model.Inventory) bool, apply func(*model.Inventory)) (*model.Inventory, error) {
	inv, ok := t.inv[productID]
	if !ok || !guard(inv) {
		return nil, nil
	}
	apply(&inv)
	inv.UpdatedAt = time.Now()
	t.inv[productID] = inv
	return &inv, nil
}

func always(model.Inventory) bool { return true }

func (t *fakeTx) Insert(ctx context.Context, inv *model.Inventory) error {
	if _, ok := t.inv[inv.ProductID]; ok {
		return errors.New("duplicate key")
	}
	t.nextID++
	inv.ID = t.nextID
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	t.inv[inv.ProductID] = *inv
	return nil
}

func (t *fakeTx) LockByProduct(ctx context.Context, productID int64) (*model.Inventory, error) {
	inv, ok := t.inv[productID]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (t *fakeTx) Reserve(ctx context.Context, productID int64, qty int) (*model.Inventory, error) {
	return t.update(productID,
		func(i model.Inventory) bool { return i.Quantity-i.ReservedQuantity >= qty },
		func(i *model.Inventory) { i.ReservedQuantity += qty })
}

func (t *fakeTx) Release(ctx context.Context, productID int64, qty int) (*model.Inventory, error) {
	return t.update(productID, always, func(i *model.Inventory) {
		i.ReservedQuantity = max(i.ReservedQuantity-qty, 0)
	})
}

func (t *fakeTx) Deduct(ctx context.Context, productID int64, qty int) (*model.Inventory, error) {
	return t.update(productID,
		func(i model.Inventory) bool { return i.Quantity >= qty },
		func(i *model.Inventory) {
			i.Quantity -= qty
			i.ReservedQuantity = max(i.ReservedQuantity-qty, 0)
		})
}

func (t *fakeTx) ApplyDelta(ctx context.Context, productID int64, delta int, restock bool) (*model.Inventory, error) {
	return t.update(productID,
		func(i model.Inventory) bool { return i.Quantity+delta >= i.ReservedQuantity },
		func(i *model.Inventory) {
			i.Quantity += delta
			if restock {
				now := time.Now()
				i.LastRestockedAt = &now
			}
		})
}

func (t *fakeTx) Delete(ctx context.Context, productID int64) (*model.Inventory, error) {
	inv, ok := t.inv[productID]
	if !ok || inv.ReservedQuantity != 0 {
		return nil, nil
	}
	delete(t.inv, productID)
	return &inv, nil
}

func (t *fakeTx) LogMovement(ctx context.Context, m *model.StockMovement) error {
	if t.store.logErr != nil {
		return t.store.logErr
	}
	t.nextID++
	m.ID = t.nextID
	m.CreatedAt = time.Now()
	t.movements = append(t.movements, *m)
	return nil
}

func (t *fakeTx) UpsertAlert(ctx context.Context, a *model.StockAlert) error {
	k := alertKey{a.ProductID, a.AlertType}
	now := time.Now()
	a.Status = model.AlertActive
	if existing, ok := t.alerts[k]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
		if existing.Status == model.AlertIgnored {
			a.Status = model.AlertIgnored
		}
	} else {
		t.nextID++
		a.ID = t.nextID
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	t.alerts[k] = *a
	return nil
}

func (t *fakeTx) ResolveAlerts(ctx context.Context, productID int64, types []model.AlertType) (int64, error) {
	var n int64
	for _, at := range types {
		k := alertKey{productID, at}
		if a, ok := t.alerts[k]; ok && a.Status == model.AlertActive {
			a.Status = model.AlertResolved
			t.alerts[k] = a
			n++
		}
	}
	return n, nil
}

type hookCall struct {
	inv    model.Inventory
	eval   alert.Evaluation
	raised []model.StockAlert
}

type recordingHook struct {
	mu    sync.Mutex
	calls []hookCall
}

func (h *recordingHook) AfterCommit(ctx context.Context, inv model.Inventory, eval alert.Evaluation, raised []model.StockAlert) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, hookCall{inv: inv, eval: eval, raised: raised})
}

func (h *recordingHook) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.calls)
}

type stubGate struct {
	products map[int64]model.Product
	err      error
}

func (g *stubGate) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	if g.err != nil {
		return nil, g.err
	}
	p, ok := g.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return &p, nil
}
