package fluid

// FlipBuffer holds two interchangeable surfaces. Front is the surface that
// currently holds valid data, Back is the one a pass may write into. After
// a pass writes Back, Flip promotes it to Front.
//
// Only the roles are stable across a Flip; callers must not hold on to the
// physical surface returned by Front or Back after flipping.
type FlipBuffer[T any] struct {
	surfaces [2]T
	active   int
}

// NewFlipBuffer wraps a and b, with a as the initial front surface.
func NewFlipBuffer[T any](a, b T) FlipBuffer[T] {
	return FlipBuffer[T]{surfaces: [2]T{a, b}}
}

// Front returns the readable surface.
func (f *FlipBuffer[T]) Front() T { return f.surfaces[f.active] }

// Back returns the writable surface.
func (f *FlipBuffer[T]) Back() T { return f.surfaces[1-f.active] }

// Flip swaps the front and back roles.
func (f *FlipBuffer[T]) Flip() { f.active = 1 - f.active }

// Both returns the two surfaces in allocation order, independent of the
// current roles.
func (f *FlipBuffer[T]) Both() (T, T) { return f.surfaces[0], f.surfaces[1] }
