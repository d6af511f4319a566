package inventory

import (
	"slices"
	"sync"
)

// Built-in categories. Stores can register their own on top of these.
const (
	CategoryFood       = "FOOD"
	CategoryBeverages  = "BEVERAGES"
	CategoryHousehold  = "HOUSEHOLD"
	CategorySnacks     = "SNACKS"
	CategoryToiletries = "TOILETRIES"
	CategoryOther      = "OTHER"
)

var builtinCategories = []string{
	CategoryFood,
	CategoryBeverages,
	CategoryHousehold,
	CategorySnacks,
	CategoryToiletries,
	CategoryOther,
}

// CategoryRegistry tracks custom category names registered at runtime.
// The built-in set is fixed; customs are appended in registration order.
type CategoryRegistry struct {
	mu     sync.Mutex
	custom []string
}

func NewCategoryRegistry() *CategoryRegistry {
	return &CategoryRegistry{}
}

// AddCustom registers a new custom category. Registering a built-in name
// or an already-registered custom is a no-op and returns false.
func (r *CategoryRegistry) AddCustom(name string) bool {
	if slices.Contains(builtinCategories, name) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.custom, name) {
		return false
	}
	r.custom = append(r.custom, name)
	return true
}

// All returns the built-in categories followed by the registered customs.
func (r *CategoryRegistry) All() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]string, 0, len(builtinCategories)+len(r.custom))
	all = append(all, builtinCategories...)
	all = append(all, r.custom...)
	return all
}
