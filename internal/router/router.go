// Package router keeps the stack of screens the TUI moves through.
// Screens never touch the stack directly; they return the commands built
// by To, Back and Swap and the app feeds the resulting messages back in.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/somdipdey/Learning-Styles/internal/screen"
)

// ToMsg opens Screen on top of the current one.
type ToMsg struct{ Screen screen.Screen }

// BackMsg returns to the previous screen. It is ignored at the root.
type BackMsg struct{}

// SwapMsg replaces the current screen, keeping the depth.
type SwapMsg struct{ Screen screen.Screen }

// To returns a command that opens s.
func To(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ToMsg{Screen: s} }
}

// Back returns a command that closes the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Swap returns a command that replaces the current screen with s.
func Swap(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return SwapMsg{Screen: s} }
}

// Addressed is implemented by messages that belong to one screen, usually
// the result of work it started. They reach that screen wherever it sits on
// the stack and are dropped once it has left.
type Addressed interface {
	Recipient() screen.Screen
}

// Router is a stack of screens with the active one on top.
type Router struct {
	stack []screen.Screen
}

// New creates a router whose root is root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Active returns the top screen, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth is the number of screens on the stack.
func (r *Router) Depth() int { return len(r.stack) }

// AtRoot reports whether Back would be a no-op.
func (r *Router) AtRoot() bool { return len(r.stack) <= 1 }

// Trail lists the non-empty titles from the root to the active screen.
func (r *Router) Trail() []string {
	out := make([]string, 0, len(r.stack))
	for _, s := range r.stack {
		if t := s.Title(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ToMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()

	case BackMsg:
		if r.AtRoot() {
			return nil
		}
		top := r.Active()
		r.stack = r.stack[:len(r.stack)-1]
		return leave(top)

	case SwapMsg:
		var left tea.Cmd
		if top := r.Active(); top != nil {
			left = leave(top)
			r.stack[len(r.stack)-1] = msg.Screen
		} else {
			r.stack = append(r.stack, msg.Screen)
		}
		return tea.Batch(left, msg.Screen.Init())

	case Addressed:
		return r.deliver(msg.Recipient(), msg)
	}

	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) deliver(to screen.Screen, msg tea.Msg) tea.Cmd {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i] == to {
			next, cmd := r.stack[i].Update(msg)
			r.stack[i] = next
			return cmd
		}
	}
	return nil
}

// View renders the active screen into width x height.
func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}

func leave(s screen.Screen) tea.Cmd {
	if l, ok := s.(screen.Leaver); ok {
		return l.Leave()
	}
	return nil
}
