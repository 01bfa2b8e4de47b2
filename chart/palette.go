package chart

var Palette = []string{"#667EEA", "#764BA2", "#8884d8", "#82ca9d", "#ffc658", "#f59e0b"}

// Color of the series at the given index, cycling through the palette.
func Color(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}
