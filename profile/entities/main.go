// Profiling:
// go build ./profile/entities
// ./entities --profile allocs
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/edwinsyarief/kura"
	"github.com/edwinsyarief/kura/internal/harness"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	h, err := harness.Setup("entities", os.Args[1:])
	if err != nil {
		os.Stderr.WriteString(eris.ToString(err, true) + "\n")
		os.Exit(2)
	}
	if err := h.Run(func() error { return run(h) }); err != nil {
		os.Exit(1)
	}
}

func run(h *harness.Harness) error {
	cfg := h.Config.Run
	for range cfg.Rounds {
		w := h.NewWorld()
		ids := make([]kura.EntityID, 0, cfg.Entities)
		for range cfg.Iterations {
			ids = ids[:0]
			for i := range cfg.Entities {
				ids = append(ids, kura.Insert(w, comp1{V: int64(i)}))
				kura.Insert(w, comp2{W: int64(i)})
			}
			kura.Each(w, func(_ kura.EntityID, c *comp2) bool {
				c.V += c.W
				return true
			})
			for _, id := range ids {
				c, ok := kura.GetMut[comp1](w, id)
				if !ok {
					return eris.Errorf("entity %d missing from comp1 partition", id)
				}
				c.W += c.V
				if _, ok := kura.Remove[comp1](w, id); !ok {
					return eris.Errorf("entity %d removed twice", id)
				}
			}
			for _, id := range kura.IDs[comp2](w) {
				kura.Remove[comp2](w, id)
			}
		}
		if err := w.Validate(); err != nil {
			return err
		}
		kura.LogStats(&h.Logger, w, zerolog.DebugLevel)
	}
	return nil
}
