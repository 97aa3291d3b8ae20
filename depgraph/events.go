package depgraph

// Event is a progress or warning notification emitted by the analysis
// pipeline. It is a closed set: consumers switch exhaustively over the
// concrete types below.
type Event interface {
	isEvent()
}

// Discovered is emitted once per file reached by traversal.
type Discovered struct {
	File string
}

// ParseError is emitted when a file cannot be parsed (or read, in which case
// Line is 0). The file stays in the graph as a node with no outgoing edges.
type ParseError struct {
	File    string
	Line    int
	Message string
}

// UnresolvedImport is emitted when a local-looking reference matches no file
// under the project root. The edge is dropped; traversal continues.
type UnresolvedImport struct {
	File      string
	Reference string
}

// CycleDetected is emitted once per cycle broken during ordering.
type CycleDetected struct {
	Files []string
}

// Completed is the terminal success event, carrying the output artifact path.
type Completed struct {
	OutputPath string
}

// Failed is the terminal failure event.
type Failed struct {
	Reason error
}

func (Discovered) isEvent()       {}
func (ParseError) isEvent()       {}
func (UnresolvedImport) isEvent() {}
func (CycleDetected) isEvent()    {}
func (Completed) isEvent()        {}
func (Failed) isEvent()           {}

// EventSink receives pipeline events in order. A nil sink discards them.
type EventSink func(Event)

// Emit delivers e to the sink, tolerating a nil sink.
func (s EventSink) Emit(e Event) {
	if s != nil {
		s(e)
	}
}
