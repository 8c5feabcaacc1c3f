package tick

// System is one stage of a game tick. Systems run in registration order and may keep state
// between frames.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to System. Its stats are reported under the name given
// to Func.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) { f(frame) }

type namedSystem struct {
	name string
	fn   SystemFunc
}

func (s *namedSystem) Execute(frame *Frame) { s.fn(frame) }

// Func returns a System named name that calls fn.
func Func(name string, fn SystemFunc) System {
	return &namedSystem{name: name, fn: fn}
}
