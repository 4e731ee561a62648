package raquet

// Result holds either a value or the error that prevented computing it.
//
// A Result with a non-nil Err is absent: hosts surface it as a null row,
// never as a zero value.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps an error.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Valid reports whether the result holds a value.
func (r Result[T]) Valid() bool {
	return r.Err == nil
}

// Get returns the value and whether it is present.
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.Err == nil
}

// Unwrap returns the value and the error, for callers that prefer the
// usual Go shape.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

func resultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}

	return Ok(v)
}
