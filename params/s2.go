package params

import "github.com/cyz14/s2cells/s2"

// SupportedLevels are the levels offered by the level selector.
var SupportedLevels = []s2.CellLevel{
	s2.CellLevel1, // 24 cells
	s2.CellLevel2, // 96 cells
	s2.CellLevel3, // 384 cells
	s2.CellLevel4, // 1536 cells
}

// DefaultLevel is the second entry of SupportedLevels, loaded once at startup.
var DefaultLevel = s2.CellLevel2

// DefaultCellHeight is the altitude, in meters, of every cell boundary vertex.
const DefaultCellHeight = 1e4

// IsSupportedLevel reports whether level is one of levels.
func IsSupportedLevel(levels []s2.CellLevel, level s2.CellLevel) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}
