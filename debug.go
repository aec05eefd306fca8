package backdrop

import (
	"fmt"
	"io"
	"os"
	"time"
)

// logOutput receives lifecycle and debug output. Tests may swap it.
var logOutput io.Writer = os.Stderr

// logf writes a prefixed line to logOutput.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(logOutput, "[backdrop] "+format+"\n", args...)
}

// debugStats accumulates per-tick timings between reports.
// Only populated when Config.Debug is true.
type debugStats struct {
	frames      int
	updateTime  time.Duration
	projectTime time.Duration
	rasterTime  time.Duration
	points      int
	lines       int
}

// debugReportEvery is the number of ticks between stats lines.
const debugReportEvery = 120

// record adds one tick and reports when the window is full.
func (st *debugStats) record(update, project, raster time.Duration, f *Frame) {
	st.frames++
	st.updateTime += update
	st.projectTime += project
	st.rasterTime += raster
	for i := range f.Batches {
		b := &f.Batches[i]
		switch b.Primitive {
		case PrimitivePoints:
			st.points += b.Count()
		case PrimitiveLines:
			st.lines += b.Count()
		}
	}
	if st.frames < debugReportEvery {
		return
	}
	n := time.Duration(st.frames)
	logf("update: %v | project: %v | raster: %v | total: %v (avg over %d ticks)",
		st.updateTime/n, st.projectTime/n, st.rasterTime/n,
		(st.updateTime+st.projectTime+st.rasterTime)/n, st.frames)
	logf("points: %d | lines: %d (avg per tick)", st.points/st.frames, st.lines/st.frames)
	*st = debugStats{}
}
