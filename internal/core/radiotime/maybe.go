package radiotime

// Maybe is a value a decoder may or may not have determined
type Maybe[T any] struct {
	v  T
	ok bool
}

// Some wraps a known value
func Some[T any](v T) Maybe[T] { return Maybe[T]{v: v, ok: true} }

// None is the undetermined value
func None[T any]() Maybe[T] { return Maybe[T]{} }

// Get returns the value and whether it is known
func (m Maybe[T]) Get() (T, bool) { return m.v, m.ok }

// OK reports whether the value is known
func (m Maybe[T]) OK() bool { return m.ok }

// Is reports whether the value is known and equal to want
func Is[T comparable](m Maybe[T], want T) bool { return m.ok && m.v == want }
