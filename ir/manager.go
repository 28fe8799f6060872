package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

type managerState int

const (
	managerCreated managerState = iota
	managerEntered
	managerDisposed
)

func (s managerState) String() string {
	switch s {
	case managerCreated:
		return "created"
	case managerEntered:
		return "entered"
	case managerDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// manager is the Created -> Entered -> Disposed state machine shared by all
// resource managers. Enter is one-shot; the owned resource is released by
// Exit (after Enter) or Dispose (before Enter). Both paths end in Disposed
// and there is no way back.
type manager struct {
	name  string
	state managerState
	node  *lifetimeNode
}

func newManager(name string) manager {
	return manager{name: name}
}

// enter transitions Created -> Entered.
func (m *manager) enter(api string) error {
	switch m.state {
	case managerEntered:
		return errors.Memory(api, m.name+" manager already entered")
	case managerDisposed:
		return errors.Memory(api, m.name+" has already been disposed")
	}
	m.state = managerEntered
	native.Logger().Sugar().Debugw("manager entered", "manager", m.name)
	return nil
}

// exit transitions Entered -> Disposed and runs the lifetime cascade.
func (m *manager) exit(api string) error {
	switch m.state {
	case managerCreated:
		return errors.Memory(api, m.name+" manager not entered")
	case managerDisposed:
		return errors.Memory(api, m.name+" has already been disposed")
	}
	m.state = managerDisposed
	if m.node != nil {
		m.node.dispose()
	}
	native.Logger().Sugar().Debugw("manager disposed", "manager", m.name)
	return nil
}

// dispose transitions Created -> Disposed without ever entering. Calling it
// on an entered manager is an error; Exit owns that path.
func (m *manager) dispose(api string) error {
	switch m.state {
	case managerEntered:
		return errors.Memory(api, "cannot call dispose() after entered; use Exit")
	case managerDisposed:
		return errors.Memory(api, m.name+" has already been disposed")
	}
	m.state = managerDisposed
	if m.node != nil {
		m.node.dispose()
	}
	return nil
}

func (m *manager) entered() bool { return m.state == managerEntered }
