package coordinator

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/skiff-term/skiff/internal/route"
)

// plainNode handles nothing.
type plainNode struct{ Base }

func newPlain() *plainNode { return &plainNode{Base: NewBase(nil)} }

// searchNode handles Search routes regardless of payload.
type searchNode struct{ Base }

func newSearch() *searchNode { return &searchNode{Base: NewBase(nil)} }

func (n *searchNode) CanHandle(r route.Route) bool {
	_, ok := r.(route.Search)
	return ok
}

func (n *searchNode) Handle(route.Route) tea.Cmd { return nil }

func searchRoute() route.Route { return route.Search{} }

func TestAddAppendsChild(t *testing.T) {
	p, c := newPlain(), newPlain()
	p.Add(newPlain())
	p.Add(c)
	kids := p.Children()
	if len(kids) != 2 {
		t.Fatalf("children = %d, want 2", len(kids))
	}
	if kids[1].ID() != c.ID() {
		t.Error("new child should be appended at the end")
	}
	count := 0
	for _, k := range kids {
		if k.ID() == c.ID() {
			count++
		}
	}
	if count != 1 {
		t.Errorf("child appears %d times, want 1", count)
	}
}

func TestRemoveDetachesByID(t *testing.T) {
	p := newPlain()
	a, b, c := newPlain(), newPlain(), newPlain()
	p.Add(a)
	p.Add(b)
	p.Add(c)
	p.Remove(b)
	kids := p.Children()
	if len(kids) != 2 {
		t.Fatalf("children = %d, want 2", len(kids))
	}
	for _, k := range kids {
		if k.ID() == b.ID() {
			t.Error("removed child still present")
		}
	}
	if kids[0].ID() != a.ID() || kids[1].ID() != c.ID() {
		t.Error("remaining children should keep their order")
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	p := newPlain()
	a, b := newPlain(), newPlain()
	p.Add(a)
	p.Add(b)
	before := append([]uuid.UUID{}, ids(p.Children())...)
	p.Remove(newPlain())
	p.Remove(nil)
	after := ids(p.Children())
	if len(after) != len(before) {
		t.Fatalf("children = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("children changed by removing a non-child")
		}
	}
}

func TestAddThenRemoveLeavesEmpty(t *testing.T) {
	p, a := newPlain(), newPlain()
	p.Add(a)
	p.Remove(a)
	if len(p.Children()) != 0 {
		t.Fatalf("children = %d, want 0", len(p.Children()))
	}
}

func TestFindNoHandlerReturnsNil(t *testing.T) {
	root := newPlain()
	a := newPlain()
	a.Add(newPlain())
	root.Add(a)
	if got := Find(root, searchRoute()); got != nil {
		t.Fatalf("Find = %v, want nil", got.ID())
	}
}

func TestFindReturnsDeepDescendant(t *testing.T) {
	root := newPlain()
	a := newPlain()
	b := newSearch()
	a.Add(b)
	root.Add(a)
	got := Find(root, searchRoute())
	if got == nil {
		t.Fatal("Find = nil, want the deep handler")
	}
	if got.ID() != b.ID() {
		t.Fatalf("Find = %v, want %v", got.ID(), b.ID())
	}
}

func TestFindNonHandlingReplacement(t *testing.T) {
	root := newPlain()
	a := newPlain()
	a.Add(newPlain()) // same shape as above, but no handler anywhere
	root.Add(a)
	if got := Find(root, searchRoute()); got != nil {
		t.Fatalf("Find = %v, want nil", got.ID())
	}
}

func TestFindPrefersDescendantOverSelf(t *testing.T) {
	root := newSearch()
	child := newSearch()
	root.Add(child)
	got := Find(root, searchRoute())
	if got == nil || got.ID() != child.ID() {
		t.Fatal("descendant should win over the receiver itself")
	}
}

func TestFindFirstMatchInChildOrder(t *testing.T) {
	root := newPlain()
	left, right := newSearch(), newSearch()
	root.Add(left)
	root.Add(right)
	got := Find(root, searchRoute())
	if got == nil || got.ID() != left.ID() {
		t.Fatal("leftmost matching subtree should win")
	}
}

func TestFindReceiverItselfWhenNoDescendantMatches(t *testing.T) {
	root := newSearch()
	root.Add(newPlain())
	got := Find(root, searchRoute())
	if got == nil || got.ID() != root.ID() {
		t.Fatal("receiver should match when no descendant does")
	}
}

func TestFindMatchesByKindNotPayload(t *testing.T) {
	root := newPlain()
	root.Add(newSearch())
	if Find(root, route.Search{IsPrivate: true}) == nil {
		t.Error("handler should match any Search payload")
	}
	if Find(root, route.Settings{Section: route.SettingsGeneral}) != nil {
		t.Error("search handler should not match a settings route")
	}
}

func TestIDsAreUniqueAndStable(t *testing.T) {
	a, b := newPlain(), newPlain()
	if a.ID() == b.ID() {
		t.Fatal("two coordinators share an ID")
	}
	if a.ID() != a.ID() {
		t.Fatal("ID should be stable")
	}
}

func ids(cs []Coordinator) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID())
	}
	return out
}
