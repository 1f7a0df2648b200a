package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amigurumi/storefront/internal/model"
)

// OrderRepo is the in-memory order store.  Safe for concurrent use.
type OrderRepo struct {
	mu   sync.RWMutex
	byID map[string]model.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{byID: make(map[string]model.Order)}
}

// Create records a checkout for a user.  The total is computed here from
// the submitted lines; clients never supply it.
func (r *OrderRepo) Create(userID string, items []model.CartItem) model.Order {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	o := model.Order{
		ID:           uuid.New().String(),
		UserID:       userID,
		Items:        items,
		Total:        total,
		Status:       model.OrderStatusCreated,
		CreatedAtUTC: time.Now().UTC(),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[o.ID] = o
	return o
}

// ListByUser returns a user's orders, newest first.  A full scan, same
// trade-off as UserRepo.GetByID.
func (r *OrderRepo) ListByUser(userID string) []model.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Order, 0)
	for _, o := range r.byID {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAtUTC.After(out[j].CreatedAtUTC) })
	return out
}

// Get fetches an order by id.  Ownership checks belong to the handler
// layer, which knows the caller's identity and role.
func (r *OrderRepo) Get(id string) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byID[id]
	if !ok {
		return model.Order{}, ErrOrderNotFound
	}
	return o, nil
}
