package binsort

import (
	"github.com/vovakirdan/binsort/internal/config"
	"github.com/vovakirdan/binsort/internal/core"
)

// Geometry is the collection area of the bin for one update.
type Geometry struct {
	Band core.Span // Vertical collection band around the bin top edge
	Zone core.Span // Horizontal hit zone around the bin centre
}

// BinTopY returns the y of the bin top edge in a field of the given height.
func BinTopY(fieldH float64, bin config.BinConfig) float64 {
	return fieldH * bin.TopRatio
}

// NewGeometry computes the collection area for a bin at binX.
func NewGeometry(fieldH, binX float64, bin config.BinConfig) Geometry {
	return Geometry{
		Band: core.SpanAround(BinTopY(fieldH, bin), bin.CollectionRadius),
		Zone: core.SpanAround(binX, bin.Width*bin.HitZoneRatio/2),
	}
}

// Classify decides the outcome of one item. Being caught is checked
// before falling through, and falling through requires y strictly past
// the band, so an item never gets both in one update.
func Classify(it *Item, processed bool, target Category, geo Geometry, rule config.WrongCollectRule) Outcome {
	if processed || it.Collected {
		return OutcomeNone
	}

	if geo.Band.Contains(it.Y) && geo.Zone.Contains(it.X) {
		if it.Category() == target {
			return OutcomeCollected
		}
		if rule == config.WrongCollectGameOver {
			return OutcomeWrong
		}
		return OutcomeNone
	}

	if geo.Band.Beyond(it.Y) {
		if it.Category() == target {
			return OutcomeMissed
		}
		return OutcomeDiscarded
	}

	return OutcomeNone
}
