package region

// Validate checks a layout before information is generated. No rule is
// enforced yet, so it always returns no problems.
// TODO: report overlapping regions here once overlap is treated as an error.
func Validate(regions []Region) []string {
	return nil
}

// OverlappingPairs lists index pairs of regions that share interior area.
// It is informational; drawing and resizing never reject overlaps.
func OverlappingPairs(regions []Region) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			if regions[i].Overlaps(regions[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
