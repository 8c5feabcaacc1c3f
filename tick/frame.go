package tick

// Frame is handed to every system during one tick.
type Frame struct {
	// Index counts ticks since the scheduler was created, starting at zero.
	Index     int64
	DeltaTime float64
	Commands  *Commands
}

func newFrame(index int64, dt float64, commands *Commands) *Frame {
	return &Frame{
		Index:     index,
		DeltaTime: dt,
		Commands:  commands,
	}
}
