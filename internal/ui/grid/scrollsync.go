package grid

import (
	"sync"

	"github.com/zjrosen/lattice/internal/log"
)

// SurfaceSetter receives the new horizontal offset for one dependent
// surface during a synchronization pass.
type SurfaceSetter func(left int)

// RowHandle is an opaque handle to a mounted row view. It exists only
// so the coordinator can push a frozen-column compensation offset into
// rows when sticky positioning is unavailable.
type RowHandle interface {
	SetFrozenOffset(left int)
}

// RowHandleRegistry maps row indices to handles for currently mounted
// row views. The rendering layer registers on mount and unregisters on
// unmount; the registry observes row lifecycle, it never owns it.
// Register, Unregister and the broadcast iteration are each atomic with
// respect to one another.
type RowHandleRegistry struct {
	mu      sync.Mutex
	handles map[int]RowHandle
}

// NewRowHandleRegistry creates an empty registry.
func NewRowHandleRegistry() *RowHandleRegistry {
	return &RowHandleRegistry{handles: make(map[int]RowHandle)}
}

// Register records the handle for a newly mounted row.
func (r *RowHandleRegistry) Register(idx int, h RowHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles[idx] = h
}

// Unregister removes the handle for an unmounted row.
func (r *RowHandleRegistry) Unregister(idx int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, idx)
}

// Len returns the number of mounted rows.
func (r *RowHandleRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// broadcast pushes the offset into every mounted handle. The handle set
// is snapshotted under the lock so a concurrent mount/unmount is never
// observed mid-iteration.
func (r *RowHandleRegistry) broadcast(left int) {
	r.mu.Lock()
	snapshot := make([]RowHandle, 0, len(r.handles))
	for _, h := range r.handles {
		snapshot = append(snapshot, h)
	}
	r.mu.Unlock()

	for _, h := range snapshot {
		h.SetFrozenOffset(left)
	}
}

// ScrollNotification carries the current offsets to the collaborator
// that mirrors the header layout.
type ScrollNotification struct {
	ScrollTop  int
	ScrollLeft int
}

// Coordinator owns the two scroll offsets and fans a horizontal change
// out to every dependent surface except the one that produced it. The
// origin tag is the structural guard against feedback loops: a scroll
// on surface X reaches every other surface exactly once and never
// bounces back into X within the same pass.
type Coordinator struct {
	top  int
	left int

	surfaces map[Surface]SurfaceSetter
	rows     *RowHandleRegistry

	// stickyFrozen is true when frozen columns are positioned natively;
	// the per-row compensation push is skipped entirely in that case.
	stickyFrozen bool

	// onChange runs after an offset is recorded and before fan-out, so
	// ranges derived from the offsets are consistent by the time any
	// surface setter observes the change.
	onChange func()

	onScroll func(ScrollNotification)
}

// NewCoordinator creates a coordinator with no registered surfaces.
func NewCoordinator(stickyFrozen bool) *Coordinator {
	return &Coordinator{
		surfaces:     make(map[Surface]SurfaceSetter),
		rows:         NewRowHandleRegistry(),
		stickyFrozen: stickyFrozen,
	}
}

// SetOnChange registers the hook invoked after an offset is recorded
// and before any surface is synchronized.
func (c *Coordinator) SetOnChange(fn func()) { c.onChange = fn }

// SetOnScroll registers the scroll-notification callback consumed by
// the header-mirroring collaborator.
func (c *Coordinator) SetOnScroll(fn func(ScrollNotification)) { c.onScroll = fn }

// RegisterSurface adds a dependent surface to the fan-out set.
func (c *Coordinator) RegisterSurface(s Surface, set SurfaceSetter) {
	c.surfaces[s] = set
}

// UnregisterSurface removes a surface from the fan-out set.
func (c *Coordinator) UnregisterSurface(s Surface) {
	delete(c.surfaces, s)
}

// Rows exposes the row-handle registry to the rendering layer.
func (c *Coordinator) Rows() *RowHandleRegistry { return c.rows }

// Top returns the current vertical offset.
func (c *Coordinator) Top() int { return c.top }

// Left returns the current horizontal offset.
func (c *Coordinator) Left() int { return c.left }

// SetVertical records a new vertical offset and notifies the external
// layout that mirrors vertical position.
func (c *Coordinator) SetVertical(top int) {
	if top < 0 {
		top = 0
	}
	c.top = top
	if c.onChange != nil {
		c.onChange()
	}
	c.notify()
}

// SetHorizontal records a new horizontal offset and synchronously
// pushes it to every other registered surface, skipping origin.
func (c *Coordinator) SetHorizontal(left int, origin Surface) {
	if left < 0 {
		left = 0
	}
	c.left = left
	if c.onChange != nil {
		c.onChange()
	}

	for s, set := range c.surfaces {
		if s == origin {
			continue
		}
		set(left)
	}

	if !c.stickyFrozen {
		c.rows.broadcast(left)
	}

	log.Debug(log.CatSync, "Horizontal sync", "left", left, "origin", origin, "surfaces", len(c.surfaces))
	c.notify()
}

func (c *Coordinator) notify() {
	if c.onScroll != nil {
		c.onScroll(ScrollNotification{ScrollTop: c.top, ScrollLeft: c.left})
	}
}
