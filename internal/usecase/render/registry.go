package render

import (
	"sync"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/sirupsen/logrus"
)

// Registry maps source types to renderers and resolves which renderer should
// handle a given bundle. It is an explicit value owned by the composition
// root; tests construct their own instance instead of sharing global state.
//
// Mutation methods are called during application setup or test teardown only,
// never concurrently with resolution; the lock keeps the race detector quiet
// rather than expressing a real concurrency requirement.
type Registry struct {
	mu       sync.RWMutex
	byType   map[entity.SourceType]Renderer
	order    []entity.SourceType // registration order, probe tie-break
	fallback Renderer
	logger   logrus.FieldLogger
}

// NewRegistry constructs an empty renderer registry.
func NewRegistry(logger logrus.FieldLogger) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Registry{
		byType: make(map[entity.SourceType]Renderer),
		logger: logger,
	}
}

// Register inserts or overwrites the mapping for a source type. Overwriting
// is allowed (startup patterns register defaults then override) but logged at
// warning level since a silent overwrite can mask misconfiguration.
func (r *Registry) Register(sourceType entity.SourceType, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byType[sourceType]; ok {
		r.logger.WithFields(logrus.Fields{
			"source_type": sourceType,
			"previous":    existing.Name(),
			"renderer":    renderer.Name(),
		}).Warn("overwriting renderer registration")
	} else {
		r.order = append(r.order, sourceType)
	}
	r.byType[sourceType] = renderer
}

// Registration pairs a source type with its renderer for bulk registration.
type Registration struct {
	SourceType entity.SourceType
	Renderer   Renderer
}

// RegisterAll is the bulk form of Register; entry order becomes registration
// order, which is the probe tie-break.
func (r *Registry) RegisterAll(entries []Registration) {
	for _, e := range entries {
		r.Register(e.SourceType, e.Renderer)
	}
}

// SetFallback designates the renderer used when no exact or probed match
// exists.
func (r *Registry) SetFallback(renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = renderer
}

// Renderer performs an exact lookup, falling back to the fallback renderer
// when the type is unknown. Returns nil when neither exists.
func (r *Registry) Renderer(sourceType entity.SourceType) Renderer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byType[sourceType]; ok {
		return renderer
	}
	return r.fallback
}

// RendererForBundle resolves the renderer for a bundle:
//  1. exact match on the bundle's base source type, accepted only when its
//     CanRender approves the concrete bundle;
//  2. otherwise probe registered renderers in registration order;
//  3. otherwise the fallback, again gated by CanRender;
//  4. otherwise nil. A nil result signals unrenderable content to the
//     caller; it is not an error condition here.
func (r *Registry) RendererForBundle(bundle *entity.ContentBundle) Renderer {
	if bundle == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if exact, ok := r.byType[bundle.BaseSourceType()]; ok && exact.CanRender(bundle) {
		return exact
	}
	for _, sourceType := range r.order {
		if candidate := r.byType[sourceType]; candidate.CanRender(bundle) {
			return candidate
		}
	}
	if r.fallback != nil && r.fallback.CanRender(bundle) {
		return r.fallback
	}
	return nil
}

// SupportedTypes lists the registered source types in registration order.
func (r *Registry) SupportedTypes() []entity.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.SourceType, len(r.order))
	copy(out, r.order)
	return out
}

// IsSupported reports whether an exact registration exists for the type.
func (r *Registry) IsSupported(sourceType entity.SourceType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byType[sourceType]
	return ok
}

// Clear resets all registrations. Intended for test isolation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType = make(map[entity.SourceType]Renderer)
	r.order = nil
	r.fallback = nil
}
