package kura

import (
	"sort"

	"github.com/rs/zerolog"
)

func loadPartitionsToEvent(zeroLoggerEvent *zerolog.Event, w *World) *zerolog.Event {
	type row struct {
		name  string
		count int
	}
	rows := make([]row, 0, len(w.storage.partitions))
	for t, p := range w.storage.partitions {
		rows = append(rows, row{name: t.String(), count: p.len()})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].name < rows[j].name
	})
	arrayLogger := zerolog.Arr()
	for _, r := range rows {
		arrayLogger = arrayLogger.Dict(zerolog.Dict().
			Str("type", r.name).
			Int("count", r.count))
	}
	return zeroLoggerEvent.Array("partitions", arrayLogger)
}

// LogStats logs a World's entity, composite and per-partition counts as one
// event.
func LogStats(logger *zerolog.Logger, w *World, level zerolog.Level) {
	st := w.Stats()
	zeroLoggerEvent := logger.WithLevel(level).
		Int("total_entities", st.Entities).
		Int("total_composites", st.Composites).
		Uint64("next_entity_id", uint64(st.NextEntityID)).
		Uint64("next_composite_id", uint64(st.NextCompositeID))
	zeroLoggerEvent = loadPartitionsToEvent(zeroLoggerEvent, w)
	zeroLoggerEvent.Send()
}

// LogEntity logs where entity id lives: its partition type and, for
// composite members, the composite and its member ids. Unknown ids are
// logged with found=false.
func LogEntity(logger *zerolog.Logger, w *World, level zerolog.Level, id EntityID) {
	zeroLoggerEvent := logger.WithLevel(level).Uint64("entity_id", uint64(id))
	t, ok := w.index[id]
	if !ok {
		zeroLoggerEvent.Bool("found", false).Send()
		return
	}
	zeroLoggerEvent.Bool("found", true).Str("type", t.String())
	if c, ok := CompositeOf(w, id); ok {
		members, _ := Members(w, c)
		arrayLogger := zerolog.Arr()
		for _, m := range members {
			arrayLogger = arrayLogger.Uint64(uint64(m))
		}
		zeroLoggerEvent.Uint64("composite_id", uint64(c)).Array("members", arrayLogger)
	}
	zeroLoggerEvent.Send()
}
