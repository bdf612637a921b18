// Package coordinator implements the navigation layer: a tree of coordinator
// nodes that own screens through a shared router and decide which of them
// presents a given route. Parents own their children; the only upward link is
// the non-owning ParentDelegate callback.
package coordinator

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
)

// Coordinator is one node of the navigation tree.
type Coordinator interface {
	ID() uuid.UUID
	Children() []Coordinator
	Add(child Coordinator)
	Remove(child Coordinator)
}

// RouteHandler is the capability a coordinator declares for routes it
// presents. Coordinators that do not implement it handle nothing.
type RouteHandler interface {
	CanHandle(r route.Route) bool
	Handle(r route.Route) tea.Cmd
}

// ParentDelegate receives completion callbacks from child coordinators. It is
// a non-owning reference; the ownership edge always points parent to child.
type ParentDelegate interface {
	DidFinish(child Coordinator) tea.Cmd
}

// Base carries the identity, the child list and the router reference every
// coordinator needs. Embed it and set the router at construction.
type Base struct {
	id       uuid.UUID
	children []Coordinator
	router   router.Navigator
}

// NewBase returns a Base bound to nav for the node's lifetime.
func NewBase(nav router.Navigator) Base {
	return Base{id: uuid.New(), router: nav}
}

func (b *Base) ID() uuid.UUID { return b.id }

// Children returns the child list in insertion order. Callers must not
// mutate it; use Add and Remove.
func (b *Base) Children() []Coordinator { return b.children }

func (b *Base) Router() router.Navigator { return b.router }

// Add appends child to the end of the child list. Adding the same child
// twice is a caller bug and is not checked here.
func (b *Base) Add(child Coordinator) {
	if child == nil {
		return
	}
	b.children = append(b.children, child)
}

// Remove detaches the first child with the same ID. Removing a child that is
// not present is a no-op.
func (b *Base) Remove(child Coordinator) {
	if child == nil {
		return
	}
	for i, c := range b.children {
		if c.ID() == child.ID() {
			b.children = append(b.children[:i], b.children[i+1:]...)
			return
		}
	}
}

// Find returns the coordinator in the subtree rooted at node that handles r,
// or nil. The search is depth-first and children-first: every descendant, in
// child order, is consulted before the node's own capability counts. Pure
// read; callers must not mutate the tree concurrently.
func Find(node Coordinator, r route.Route) Coordinator {
	if node == nil {
		return nil
	}
	for _, child := range node.Children() {
		if match := Find(child, r); match != nil {
			return match
		}
	}
	if h, ok := node.(RouteHandler); ok && h.CanHandle(r) {
		return node
	}
	return nil
}
