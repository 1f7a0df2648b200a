package repository

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/amigurumi/storefront/internal/model"
)

// ProductRepo is the in-memory catalog store.  Safe for concurrent use.
type ProductRepo struct {
	mu   sync.RWMutex
	byID map[string]model.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{byID: make(map[string]model.Product)}
}

// SeedDemo loads a few example products so the storefront has data on
// first run.
func (r *ProductRepo) SeedDemo() {
	r.Create("Octopus Amigurumi", "Handmade purple octopus", 28.50, 10, []string{"octopus", "soft"})
	r.Create("Bunny Amigurumi", "Pastel bunny with scarf", 24.00, 15, []string{"bunny", "cute"})
	r.Create("Dinosaur Amigurumi", "Green dino with spikes", 32.00, 7, []string{"dino", "green"})
}

// List returns all products sorted by name.
func (r *ProductRepo) List() []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get fetches a product by id.
func (r *ProductRepo) Get(id string) (model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Create inserts a new product and returns it with its assigned id.
func (r *ProductRepo) Create(name, description string, price float64, stock int, tags []string) model.Product {
	p := model.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Tags:        tags,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return p
}

// Update replaces every field of an existing product.
func (r *ProductRepo) Update(id, name, description string, price float64, stock int, tags []string) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return model.Product{}, ErrProductNotFound
	}
	p := model.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Tags:        tags,
	}
	r.byID[id] = p
	return p, nil
}

// Delete removes a product by id.
func (r *ProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}
