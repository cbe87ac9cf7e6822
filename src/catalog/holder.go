package catalog

import "sync/atomic"

// Holder is the cell through which the rest of the application reaches the
// current catalog. A finished scan publishes its catalog with Set, request
// handlers load whatever is current at that moment. Readers which obtained a
// catalog keep a fully consistent view even while a newer one is being
// published, catalogs themselves never change.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// Catalog returns the currently published catalog. It is nil before the
// first scan has finished.
func (h *Holder) Catalog() *Catalog {
	return h.current.Load()
}

// Set publishes a new catalog.
func (h *Holder) Set(c *Catalog) {
	h.current.Store(c)
}
