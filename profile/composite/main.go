// Profiling:
// go build ./profile/composite
// ./composite --profile cpu
// go tool pprof -http=":8000" -nodefraction=0.001 ./composite cpu.pprof

package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/edwinsyarief/kura"
	"github.com/edwinsyarief/kura/internal/harness"
)

type body struct {
	X, Y float64
}

type hitbox struct {
	W, H float64
}

type label string

func main() {
	h, err := harness.Setup("composite", os.Args[1:])
	if err != nil {
		os.Stderr.WriteString(eris.ToString(err, true) + "\n")
		os.Exit(2)
	}
	if err := h.Run(func() error { return run(h) }); err != nil {
		os.Exit(1)
	}
}

// run builds composites of three members, then tears half of them down one
// member at a time and the other half with RemoveComposite.
func run(h *harness.Harness) error {
	cfg := h.Config.Run
	for range cfg.Rounds {
		w := h.NewWorld()
		dissolved := 0
		kura.Subscribe(w.Events(), func(kura.CompositeDissolved) { dissolved++ })

		composites := make([]kura.CompositeID, 0, cfg.Entities)
		for range cfg.Iterations {
			composites = composites[:0]
			for i := range cfg.Entities {
				c := kura.InsertComposite(w, body{X: float64(i)}, hitbox{W: 1, H: 1})
				if _, err := kura.Attach(w, c, label("member")); err != nil {
					return err
				}
				composites = append(composites, c)
			}
			for i, c := range composites {
				if i%2 == 0 {
					kura.RemoveComposite(w, c)
					continue
				}
				members, _ := kura.Members(w, c)
				if _, ok := kura.Remove[body](w, members[0]); !ok {
					return eris.Errorf("composite %d lost its body", c)
				}
				kura.Remove[hitbox](w, members[1])
				kura.Remove[label](w, members[2])
				if kura.HasComposite(w, c) {
					return eris.Errorf("composite %d survived its last member", c)
				}
			}
		}
		if want := cfg.Iterations * cfg.Entities; dissolved != want {
			return eris.Errorf("dissolved %d composites, want %d", dissolved, want)
		}
		if err := w.Validate(); err != nil {
			return err
		}
		kura.LogStats(&h.Logger, w, zerolog.DebugLevel)
	}
	return nil
}
