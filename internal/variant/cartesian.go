package variant

// Cartesian returns every combination that picks one value from each axis.
// Tuples keep the axis order and the last axis varies fastest. With no axes
// the result is a single empty tuple.
func Cartesian(axes [][]string) [][]string {
	total := 1
	for _, axis := range axes {
		total *= len(axis)
	}

	result := make([][]string, 0, total)
	current := make([]string, len(axes))

	var backtrack func(depth int)
	backtrack = func(depth int) {
		if depth == len(axes) {
			tuple := make([]string, len(current))
			copy(tuple, current)
			result = append(result, tuple)
			return
		}

		for _, value := range axes[depth] {
			current[depth] = value
			backtrack(depth + 1)
		}
	}

	backtrack(0)
	return result
}
