// plugins/regionstats/regionstats.go
package regionstats

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tilegrid/internal/plugin"
	"github.com/bethropolis/tilegrid/internal/region"
)

// Ensure RegionStats implements plugin.Plugin
var _ plugin.Plugin = (*RegionStats)(nil)

// maxListedPairs caps how many overlapping pairs the status line names.
const maxListedPairs = 3

// RegionStats reports count, covered area and overlaps of the layout.
type RegionStats struct {
	api plugin.EditorAPI
}

// New creates a new instance of the RegionStats plugin.
func New() plugin.Plugin {
	return &RegionStats{}
}

// Name returns the unique name of the plugin.
func (p *RegionStats) Name() string {
	return "regionstats"
}

// Initialize registers the :stats command.
func (p *RegionStats) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *RegionStats) Shutdown() error {
	return nil
}

// Stats summarizes a layout.
type Stats struct {
	Count       int
	Area        float64 // sum of region areas, overlaps counted twice
	Coverage    float64 // Area as a fraction of the canvas
	Overlapping [][2]int
}

// Compute summarizes regions on a width x height canvas.
func Compute(regions []region.Region, width, height int) Stats {
	normalized := make([]region.Region, len(regions))
	s := Stats{Count: len(regions)}
	for i, r := range regions {
		normalized[i] = r.Normalize()
		s.Area += r.Area()
	}
	if width > 0 && height > 0 {
		s.Coverage = s.Area / float64(width*height)
	}
	s.Overlapping = region.OverlappingPairs(normalized)
	return s
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Regions: %d, Area: %g (%.1f%% of canvas), Overlaps: %d", s.Count, s.Area, s.Coverage*100, len(s.Overlapping))
	for i, pair := range s.Overlapping {
		if i == maxListedPairs {
			b.WriteString(" ...")
			break
		}
		sep := ", "
		if i == 0 {
			sep = " ("
		}
		fmt.Fprintf(&b, "%s%s/%s", sep, region.Label(pair[0]), region.Label(pair[1]))
		if i == len(s.Overlapping)-1 {
			b.WriteString(")")
		}
	}
	return b.String()
}

// executeStats is the function called when the :stats command runs.
func (p *RegionStats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("regionstats plugin not initialized with API")
	}
	w, h := p.api.CanvasSize()
	p.api.SetStatusMessage("%s", Compute(p.api.Regions(), w, h))
	return nil
}
