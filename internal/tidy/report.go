// Package tidy converts the raw source extracts into long/tidy record
// slices with a uniform key shape (region code, year, category codes,
// value). Malformed rows are coerced to missing and dropped, never fatal;
// every drop is counted by reason so stages can report what they lost.
package tidy

import "go.uber.org/zap"

// Report counts rows through a tidy stage. RowsIn counts raw source rows,
// RowsOut tidy records after reshaping (one raw row melts into many).
type Report struct {
	RowsIn  int
	RowsOut int
	Dropped map[string]int
}

func newReport() *Report {
	return &Report{Dropped: make(map[string]int)}
}

func (r *Report) drop(reason string) {
	r.Dropped[reason]++
}

// Log emits the stage summary on the given logger.
func (r *Report) Log(log *zap.Logger, msg string) {
	fields := []zap.Field{
		zap.Int("rows_in", r.RowsIn),
		zap.Int("rows_out", r.RowsOut),
	}
	for reason, n := range r.Dropped {
		fields = append(fields, zap.Int("dropped_"+reason, n))
	}
	log.Info(msg, fields...)
}
