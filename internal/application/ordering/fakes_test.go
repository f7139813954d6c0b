package ordering_test

// Fakes en memoria para los tests del procesador de órdenes. El TxRunner opera
// sobre una copia del estado y solo la publica en el commit, igual que una
// transacción real: un error a mitad de camino no deja efectos parciales.
// El mutex del store serializa las transacciones, como lo haría el lock de fila.

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

type memState struct {
	branches  map[string]entity.Branch
	products  map[string]entity.Product
	orders    map[string]entity.Order
	items     map[string][]entity.OrderItem
	movements []entity.StockMovement
}

func newMemState() *memState {
	return &memState{
		branches: make(map[string]entity.Branch),
		products: make(map[string]entity.Product),
		orders:   make(map[string]entity.Order),
		items:    make(map[string][]entity.OrderItem),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.branches {
		c.branches[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.OrderItem(nil), v...)
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	return c
}

type fakeStore struct {
	mu    sync.Mutex
	state *memState

	// onOrderRead, si está definido, se invoca (fuera del mutex) en cada lectura
	// de orden hecha fuera de transacción. Permite forzar intercalados donde
	// varias goroutines leen el mismo estado antes de que alguna lo cambie.
	onOrderRead func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: newMemState()}
}

// with ejecuta fn con el estado correcto: el snapshot de la tx si existe, o el
// estado publicado bajo el mutex del store.
func with[T any](st *fakeStore, tx *memState, fn func(s *memState) (T, error)) (T, error) {
	if tx != nil {
		return fn(tx)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return fn(st.state)
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	st *fakeStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	snap := r.st.state.clone()
	err := fn(
		&fakeMovementRepo{st: r.st, tx: snap},
		&fakeProductRepo{st: r.st, tx: snap},
		&fakeOrderRepo{st: r.st, tx: snap},
	)
	if err != nil {
		return err // rollback: el snapshot se descarta
	}
	r.st.state = snap
	return nil
}

// ── BranchRepository ──────────────────────────────────────────────────────────

type fakeBranchRepo struct {
	st *fakeStore
}

func (r *fakeBranchRepo) Create(b *entity.Branch) error {
	_, err := with(r.st, nil, func(s *memState) (struct{}, error) {
		s.branches[b.ID] = *b
		return struct{}{}, nil
	})
	return err
}

func (r *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	return with(r.st, nil, func(s *memState) (*entity.Branch, error) {
		if b, ok := s.branches[id]; ok {
			out := b
			return &out, nil
		}
		return nil, nil
	})
}

func (r *fakeBranchRepo) Update(b *entity.Branch) error {
	_, err := with(r.st, nil, func(s *memState) (struct{}, error) {
		s.branches[b.ID] = *b
		return struct{}{}, nil
	})
	return err
}

func (r *fakeBranchRepo) List(limit, offset int) ([]*entity.Branch, error) {
	return nil, nil
}

func (r *fakeBranchRepo) Delete(id string) error {
	_, err := with(r.st, nil, func(s *memState) (struct{}, error) {
		delete(s.branches, id)
		return struct{}{}, nil
	})
	return err
}

func (r *fakeBranchRepo) CountProducts(id string) (int64, error) {
	return with(r.st, nil, func(s *memState) (int64, error) {
		var n int64
		for _, p := range s.products {
			if p.BranchID == id {
				n++
			}
		}
		return n, nil
	})
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type fakeProductRepo struct {
	st *fakeStore
	tx *memState
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	_, err := with(r.st, r.tx, func(s *memState) (struct{}, error) {
		s.products[p.ID] = *p
		return struct{}{}, nil
	})
	return err
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return with(r.st, r.tx, func(s *memState) (*entity.Product, error) {
		if p, ok := s.products[id]; ok {
			out := p
			return &out, nil
		}
		return nil, nil
	})
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return with(r.st, r.tx, func(s *memState) (*entity.Product, error) {
		for _, p := range s.products {
			if p.Barcode == barcode {
				out := p
				return &out, nil
			}
		}
		return nil, nil
	})
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	_, err := with(r.st, r.tx, func(s *memState) (struct{}, error) {
		s.products[p.ID] = *p
		return struct{}{}, nil
	})
	return err
}

func (r *fakeProductRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	_, err := with(r.st, r.tx, func(s *memState) (struct{}, error) {
		delete(s.products, id)
		return struct{}{}, nil
	})
	return err
}

func (r *fakeProductRepo) GetForUpdate(productID, branchID string) (*entity.Product, error) {
	return with(r.st, r.tx, func(s *memState) (*entity.Product, error) {
		if p, ok := s.products[productID]; ok && p.BranchID == branchID {
			out := p
			return &out, nil
		}
		return nil, nil
	})
}

func (r *fakeProductRepo) UpdateStock(productID string, quantity int64) error {
	_, err := with(r.st, r.tx, func(s *memState) (struct{}, error) {
		p := s.products[productID]
		p.StockQuantity = quantity
		s.products[productID] = p
		return struct{}{}, nil
	})
	return err
}

// ── OrderRepository ───────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	st *fakeStore
	tx *memState
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	_, err := with(r.st, r.tx, func(s *memState) (struct{}, error) {
		// UNIQUE sobre idempotency_key, como en el esquema real
		if o.IdempotencyKey != "" {
			for _, existing := range s.orders {
				if existing.IdempotencyKey == o.IdempotencyKey {
					return struct{}{}, domain.ErrDuplicate
				}
			}
		}
		stored := *o
		stored.Items = nil
		s.orders[o.ID] = stored
		return struct{}{}, nil
	})
	return err
}

func (r *fakeOrderRepo) CreateItem(item *entity.OrderItem) error {
	_, err := with(r.st, r.tx, func(s *memState) (struct{}, error) {
		s.items[item.OrderID] = append(s.items[item.OrderID], *item)
		return struct{}{}, nil
	})
	return err
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	if r.tx == nil && r.st.onOrderRead != nil {
		r.st.onOrderRead()
	}
	return with(r.st, r.tx, func(s *memState) (*entity.Order, error) {
		o, ok := s.orders[id]
		if !ok {
			return nil, nil
		}
		out := o
		for i := range s.items[id] {
			item := s.items[id][i]
			out.Items = append(out.Items, &item)
		}
		return &out, nil
	})
}

func (r *fakeOrderRepo) GetByIdempotencyKey(key string) (*entity.Order, error) {
	return with(r.st, r.tx, func(s *memState) (*entity.Order, error) {
		for id, o := range s.orders {
			if o.IdempotencyKey == key {
				out := o
				for i := range s.items[id] {
					item := s.items[id][i]
					out.Items = append(out.Items, &item)
				}
				return &out, nil
			}
		}
		return nil, nil
	})
}

func (r *fakeOrderRepo) UpdateStatus(id, from, to string, updatedAt time.Time) error {
	_, err := with(r.st, r.tx, func(s *memState) (struct{}, error) {
		// Compare-and-set como el UPDATE condicional del esquema real
		o, ok := s.orders[id]
		if !ok || o.Status != from {
			return struct{}{}, domain.ErrInvalidTransition
		}
		o.Status = to
		o.UpdatedAt = updatedAt
		s.orders[id] = o
		return struct{}{}, nil
	})
	return err
}

func (r *fakeOrderRepo) ListByBranch(branchID string, from, to *time.Time, limit, offset int) ([]*entity.Order, error) {
	return with(r.st, r.tx, func(s *memState) ([]*entity.Order, error) {
		var out []*entity.Order
		for _, o := range s.orders {
			if o.BranchID == branchID {
				cp := o
				out = append(out, &cp)
			}
		}
		return out, nil
	})
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type fakeMovementRepo struct {
	st *fakeStore
	tx *memState
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	_, err := with(r.st, r.tx, func(s *memState) (struct{}, error) {
		s.movements = append(s.movements, *m)
		return struct{}{}, nil
	})
	return err
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return with(r.st, r.tx, func(s *memState) ([]*entity.StockMovement, error) {
		var out []*entity.StockMovement
		for i := range s.movements {
			if s.movements[i].ProductID == productID {
				m := s.movements[i]
				out = append(out, &m)
			}
		}
		return out, nil
	})
}

func (r *fakeMovementRepo) ListByBranch(branchID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return with(r.st, r.tx, func(s *memState) ([]*entity.StockMovement, error) {
		var out []*entity.StockMovement
		for i := range s.movements {
			if s.movements[i].BranchID == branchID {
				m := s.movements[i]
				out = append(out, &m)
			}
		}
		return out, nil
	})
}
