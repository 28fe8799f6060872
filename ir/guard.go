package ir

import "github.com/wippyai/ir-bindings/errors"

// ensureOwner guards the owning resources: contexts, modules, builders,
// binaries, iterators. Misusing one after disposal is a memory-state error.
func ensureOwner(tok *token, api string) error {
	if cause, dead := tok.deadCause(); dead {
		return errors.Memory(api, "used after "+cause)
	}
	return nil
}

// ensureHandle guards value, type and block wrappers. A handle that
// outlives its root is a use-after-free.
func ensureHandle(tok *token, api string) error {
	if cause, dead := tok.deadCause(); dead {
		return errors.UseAfterFree(api, "used after "+cause)
	}
	return nil
}

// checkIndex rejects indices outside [0, count). countName is the
// owner-reported count as it should read in the message, e.g.
// "num_operands".
func checkIndex(api string, idx int, countName string, count int) error {
	if idx < 0 || idx >= count {
		return errors.OutOfRange(api, idx, countName, count)
	}
	return nil
}
