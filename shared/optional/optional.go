// Package optional holds a lookup result that is either Found or Absent.
package optional

type Optional[T any] struct {
	value   T
	present bool
}

func Found[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

func Absent[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Optional[T]) IsPresent() bool {
	return o.present
}

// Map converts a Found value and keeps Absent as is.
func Map[T, R any](o Optional[T], fn func(T) R) Optional[R] {
	if !o.present {
		return Absent[R]()
	}

	return Found(fn(o.value))
}
