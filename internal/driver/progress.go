package driver

import "time"

// Stage identifies a pipeline step for progress reporting.
type Stage string

const (
	StageLoad    Stage = "load"
	StageLex     Stage = "lex"
	StageCollect Stage = "collect"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusCached  Status = "cached"
)

// ProgressEvent reports progress for a file (or for the whole run when File is empty).
type ProgressEvent struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be goroutine-safe.
type ProgressSink interface {
	OnEvent(ProgressEvent)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- ProgressEvent
}

func (s ChannelSink) OnEvent(evt ProgressEvent) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt ProgressEvent) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
