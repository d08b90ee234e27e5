package binsort

import (
	"hash/fnv"
	"math"
)

// Snapshot is a compact copy of the run for determinism checks.
// Positions are rounded to hundredths of a unit.
type Snapshot struct {
	Tick      uint64
	Phase     int
	Score     int
	Lives     int
	Combo     int
	Level     int
	Spawned   int
	Target    int
	BinX      int
	DropSpeed int
	SpawnMS   int64

	// Items flattened as 4 ints each: Category, X, Y, Collected
	ItemData []int
	ItemIDs  []string
}

// Snapshot returns the current run as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := &g.state
	data := make([]int, 0, len(s.Items)*4)
	ids := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		collected := 0
		if it.Collected {
			collected = 1
		}
		data = append(data, int(it.Category()), centi(it.X), centi(it.Y), collected)
		ids = append(ids, it.ID)
	}

	return Snapshot{
		Tick:      g.tick,
		Phase:     int(s.Phase),
		Score:     s.Score,
		Lives:     s.Lives,
		Combo:     s.Combo,
		Level:     s.Level,
		Spawned:   s.Spawned,
		Target:    int(s.Bin.Category),
		BinX:      centi(s.Bin.X),
		DropSpeed: centi(s.DropSpeed),
		SpawnMS:   s.SpawnInterval.Milliseconds(),
		ItemData:  data,
		ItemIDs:   ids,
	}
}

func centi(v float64) int {
	return int(math.Round(v * 100))
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Spawned)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Target)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BinX)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.DropSpeed) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SpawnMS)   //#nosec G115 -- hash computation

	for _, v := range snap.ItemData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	ids := fnv.New64a()
	for _, id := range snap.ItemIDs {
		_, _ = ids.Write([]byte(id))
	}
	h = h*31 + ids.Sum64()

	return h
}
