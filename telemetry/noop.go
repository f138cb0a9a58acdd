package telemetry

import "io"

// noOpCollector is used when telemetry is disabled.
type noOpCollector struct{}

func (noOpCollector) Start(name string) Timer { return noOpTimer{} }

func (noOpCollector) Count(name string, n int) {}

func (noOpCollector) Report(w io.Writer) {}

type noOpTimer struct{}

func (noOpTimer) End() {}

func (noOpTimer) Child(name string) Timer { return noOpTimer{} }
