package ir

// token is the shared liveness cell issued by a root resource. Wrappers
// derived from the root hold a pointer to it; checking costs one load.
// Invalidation is monotonic: live -> dead, never back.
//
// Tokens chain to their owner's token so that a wrapper owned by a module
// inside a context dies with either. The chain depth is bounded by the
// ownership tree (at most root -> module -> wrapper), so checks stay O(1).
type token struct {
	parent *token
	cause  string
	dead   bool
}

func newToken(cause string, parent *token) *token {
	return &token{cause: cause, parent: parent}
}

// deadCause walks the chain and returns the cause of the outermost dead
// token, so a wrapper killed by a cascading context disposal reports the
// context, not the intermediate module.
func (t *token) deadCause() (string, bool) {
	cause, dead := "", false
	for cur := t; cur != nil; cur = cur.parent {
		if cur.dead {
			cause, dead = cur.cause, true
		}
	}
	return cause, dead
}

func (t *token) live() bool {
	_, dead := t.deadCause()
	return !dead
}

// invalidate kills the token. Idempotent: a dead token stays dead.
func (t *token) invalidate() {
	t.dead = true
}

// lifetimeNode is one edge bundle in the ownership tree. Disposing a node
// disposes its children first (in reverse creation order), runs its own
// disposer exactly once, and invalidates its token.
type lifetimeNode struct {
	tok      *token
	disposer func()
	children []*lifetimeNode
	disposed bool
}

func newLifetimeNode(tok *token, disposer func()) *lifetimeNode {
	return &lifetimeNode{tok: tok, disposer: disposer}
}

func (n *lifetimeNode) adopt(child *lifetimeNode) {
	n.children = append(n.children, child)
}

func (n *lifetimeNode) dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	for i := len(n.children) - 1; i >= 0; i-- {
		n.children[i].dispose()
	}
	n.children = nil
	if n.disposer != nil {
		n.disposer()
	}
	if n.tok != nil {
		n.tok.invalidate()
	}
}
