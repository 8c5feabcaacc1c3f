package engine

// StandardSetSize is the number of leading catalogue entries that form the standard set.
const StandardSetSize = 7

// DefaultPieces returns the 5x5 catalogue: the seven standard pieces followed by five
// extended ones. Columns are listed left to right, cells top to bottom.
func DefaultPieces() []PieceDef {
	defs := []PieceDef{
		{Name: "T", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 0, 1, 0, 0},
			{0, 1, 1, 0, 0},
			{0, 0, 1, 0, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "I", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
			{0, 1, 1, 1, 1},
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "S", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 1, 0, 0, 0},
			{0, 1, 1, 0, 0},
			{0, 0, 1, 0, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "Z", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 0, 1, 0, 0},
			{0, 1, 1, 0, 0},
			{0, 1, 0, 0, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "O", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
			{0, 1, 1, 0, 0},
			{0, 1, 1, 0, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "L", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 0, 0, 1, 0},
			{0, 1, 1, 1, 0},
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "J", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
			{0, 1, 1, 1, 0},
			{0, 0, 0, 1, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "Plus", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 0, 1, 0, 0},
			{0, 1, 1, 1, 0},
			{0, 0, 1, 0, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "U", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
			{0, 1, 0, 1, 0},
			{0, 1, 1, 1, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "V", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 1, 0, 0, 0},
			{0, 1, 0, 0, 0},
			{0, 1, 1, 1, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "S5", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 0, 1, 1, 0},
			{0, 0, 1, 0, 0},
			{0, 1, 1, 0, 0},
			{0, 0, 0, 0, 0},
		}},
		{Name: "Z5", Columns: [][]uint8{
			{0, 0, 0, 0, 0},
			{0, 1, 1, 0, 0},
			{0, 0, 1, 0, 0},
			{0, 0, 1, 1, 0},
			{0, 0, 0, 0, 0},
		}},
	}
	for i := range defs {
		defs[i].Material = i % StandardSetSize
	}
	return defs
}
