// Package router is the presentation boundary coordinators drive. It owns a
// stack of screens and exposes push/present/dismiss/set-root; coordinators
// never manipulate the stack directly and screens never know who presented
// them.
package router

import tea "github.com/charmbracelet/bubbletea"

// Screen is one presentable unit. Update returns the replacement screen, a
// command to run, and whether the screen asks to be dismissed.
type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

// Navigator is the contract coordinators consume.
type Navigator interface {
	SetRoot(s Screen)
	Push(s Screen)
	Present(s Screen)
	Dismiss()
	Pop() Screen
}

// Router implements Navigator over a screen stack. A presented (modal)
// screen renders as a popup over the one below; a pushed screen replaces the
// whole body until popped.
type Router struct {
	stack ScreenStack
	modal map[Screen]bool
}

func New() *Router {
	return &Router{modal: map[Screen]bool{}}
}

// SetRoot clears the stack and installs s as the only screen.
func (r *Router) SetRoot(s Screen) {
	for r.stack.Len() > 0 {
		r.dropTop()
	}
	r.stack.Push(s)
}

// Push adds s on top of the stack.
func (r *Router) Push(s Screen) {
	r.stack.Push(s)
}

// Present adds s on top of the stack, flagged modal for rendering.
func (r *Router) Present(s Screen) {
	if s == nil {
		return
	}
	r.stack.Push(s)
	r.modal[s] = true
}

// Dismiss removes the top screen. The root screen is never dismissed.
func (r *Router) Dismiss() {
	if r.stack.Len() <= 1 {
		return
	}
	r.dropTop()
}

// Pop removes and returns the top screen, nil when empty. Unlike Dismiss it
// will remove the root.
func (r *Router) Pop() Screen {
	top := r.stack.Pop()
	if top != nil {
		delete(r.modal, top)
	}
	return top
}

// Top returns the visible screen, nil when the stack is empty.
func (r *Router) Top() Screen {
	return r.stack.Top()
}

// Below returns the screen under the top one, nil when there is none.
func (r *Router) Below() Screen {
	return r.stack.Below()
}

// IsModal reports whether s was presented modally.
func (r *Router) IsModal(s Screen) bool {
	return s != nil && r.modal[s]
}

// ReplaceTop swaps the visible screen in place, keeping its modal flag.
func (r *Router) ReplaceTop(s Screen) {
	old := r.stack.Top()
	if old == nil || s == nil {
		return
	}
	if old != s && r.modal[old] {
		delete(r.modal, old)
		r.modal[s] = true
	}
	r.stack.replaceTop(s)
}

func (r *Router) Len() int {
	return r.stack.Len()
}

func (r *Router) dropTop() {
	if top := r.stack.Pop(); top != nil {
		delete(r.modal, top)
	}
}
