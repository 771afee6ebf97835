// Package plugins mantiene el registro explícito de extensiones por capacidad
// (p.ej. decodificadores de códigos de barras). El registro se llena al arrancar.
package plugins

import (
	"fmt"
	"sort"
	"sync"
)

// Capacidades conocidas.
const (
	CapabilityBarcode = "barcode"
)

// Plugin contrato mínimo de toda extensión.
type Plugin interface {
	Name() string
}

// Constructor crea una instancia nueva del plugin.
type Constructor func() Plugin

// Registry mapa capacidad → nombre → constructor. Seguro para uso concurrente.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]map[string]Constructor
}

// NewRegistry crea un registro vacío.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]map[string]Constructor)}
}

// Register agrega un constructor. Un nombre vacío o repetido en la misma capacidad es error.
func (r *Registry) Register(capability, name string, ctor Constructor) error {
	if capability == "" || name == "" {
		return fmt.Errorf("plugins: capacidad y nombre son obligatorios")
	}
	if ctor == nil {
		return fmt.Errorf("plugins: constructor nil para %s/%s", capability, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byName, ok := r.entries[capability]
	if !ok {
		byName = make(map[string]Constructor)
		r.entries[capability] = byName
	}
	if _, dup := byName[name]; dup {
		return fmt.Errorf("plugins: %s/%s ya está registrado", capability, name)
	}
	byName[name] = ctor
	return nil
}

// Names nombres registrados para la capacidad, en orden alfabético.
func (r *Registry) Names(capability string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries[capability]))
	for name := range r.entries[capability] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build instancia todos los plugins de la capacidad, en orden alfabético de nombre.
func (r *Registry) Build(capability string) []Plugin {
	names := r.Names(capability)
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, 0, len(names))
	for _, name := range names {
		out = append(out, r.entries[capability][name]())
	}
	return out
}
