package s2

/*
https://s2geometry.io/resources/s2cell_statistics.html

level  average area   number of cells
00     85011012 km2   6
01     21252753 km2   24
02      5313188 km2   96
03      1328297 km2   384
04       332074 km2   1536
05        83018 km2   6K - continental sized
06        20754 km2   24K
*/

// CellLevel represents the S2 cell level, from 0-30.
type CellLevel int

const (
	// CellLevel0 covers earth in 6 cells, one per cube face.
	CellLevel0 CellLevel = 0

	// CellLevel1 splits each face into quarters; 24 cells.
	CellLevel1 CellLevel = 1
	CellLevel2 CellLevel = 2
	CellLevel3 CellLevel = 3
	CellLevel4 CellLevel = 4
	CellLevel5 CellLevel = 5
	CellLevel6 CellLevel = 6

	// CellLevelMax is the leaf level.
	CellLevelMax CellLevel = 30
)

// Valid reports whether the level is within 0-30.
func (l CellLevel) Valid() bool {
	return l >= CellLevel0 && l <= CellLevelMax
}

// NumCells is the number of cells covering the sphere at this level: 6 * 4^level.
func (l CellLevel) NumCells() int {
	return 6 << (2 * uint(l))
}
