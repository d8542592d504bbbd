// Package convert maps coordinates between grid topologies.
//
// Exact conversions are bijections and round-trip. Approximate conversions
// pick a nearby cell in the other system and never fail.
package convert

import (
	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/grid/hex"
	"github.com/Faultbox/gridkit/pkg/grid/iso"
	"github.com/Faultbox/gridkit/pkg/grid/square"
	"github.com/Faultbox/gridkit/pkg/grid/tri"
)

// SquareToIso relabels a square cell as the isometric cell with the same
// logical position.
func SquareToIso[K square.Connectivity, P iso.Projection](c square.Coord[K]) iso.Coord[P] {
	return iso.Coord[P]{X: c.X, Y: c.Y}
}

// IsoToSquare is the inverse of SquareToIso.
func IsoToSquare[K square.Connectivity, P iso.Projection](c iso.Coord[P]) square.Coord[K] {
	return square.Coord[K]{X: c.X, Y: c.Y}
}

// HexToSquare maps (q, r) to (q + r/2, r), the usual offset-style layout of
// hexes on a square lattice. Division truncates toward zero.
func HexToSquare[K square.Connectivity, O hex.Orientation](a hex.Axial[O]) square.Coord[K] {
	return square.Coord[K]{X: a.Q + a.R/2, Y: a.R}
}

// SquareToHex maps (x, y) to (x - y/2, y).
func SquareToHex[O hex.Orientation, K square.Connectivity](c square.Coord[K]) hex.Axial[O] {
	return hex.Axial[O]{Q: c.X - c.Y/2, R: c.Y}
}

// HexToIso goes through the square lattice.
func HexToIso[P iso.Projection, O hex.Orientation](a hex.Axial[O]) iso.Coord[P] {
	return SquareToIso[square.FourConnected, P](HexToSquare[square.FourConnected](a))
}

// IsoToHex goes through the square lattice.
func IsoToHex[O hex.Orientation, P iso.Projection](c iso.Coord[P]) hex.Axial[O] {
	return SquareToHex[O](IsoToSquare[square.FourConnected](c))
}

// TriToSquare maps the two triangles of a column pair onto one square.
func TriToSquare[K square.Connectivity, T tri.Connectivity](c tri.Coord[T]) square.Coord[K] {
	return square.Coord[K]{X: grid.FloorDiv(c.X, 2), Y: c.Y}
}

// SquareToTri maps a square to the left triangle of its column pair.
func SquareToTri[T tri.Connectivity, K square.Connectivity](c square.Coord[K]) tri.Coord[T] {
	return tri.Coord[T]{X: 2 * c.X, Y: c.Y}
}

// Ready-made conversions for the common instantiations.
var (
	SquareFourToIso  grid.Exact[square.Four, iso.DiamondCoord]  = SquareToIso[square.FourConnected, iso.Diamond]
	IsoToSquareFour  grid.Exact[iso.DiamondCoord, square.Four]  = IsoToSquare[square.FourConnected, iso.Diamond]
	SquareEightToIso grid.Exact[square.Eight, iso.DiamondCoord] = SquareToIso[square.EightConnected, iso.Diamond]
	IsoToSquareEight grid.Exact[iso.DiamondCoord, square.Eight] = IsoToSquare[square.EightConnected, iso.Diamond]

	FourToEight grid.Exact[square.Four, square.Eight] = square.Recast[square.EightConnected, square.FourConnected]
	EightToFour grid.Exact[square.Eight, square.Four] = square.Recast[square.FourConnected, square.EightConnected]

	PointyToOddR  grid.Exact[hex.PointyAxial, hex.Offset[hex.Odd, hex.Pointy]]  = hex.AxialToOffset[hex.Odd, hex.Pointy]
	OddRToPointy  grid.Exact[hex.Offset[hex.Odd, hex.Pointy], hex.PointyAxial]  = hex.OffsetToAxial[hex.Odd, hex.Pointy]
	PointyToEvenR grid.Exact[hex.PointyAxial, hex.Offset[hex.Even, hex.Pointy]] = hex.AxialToOffset[hex.Even, hex.Pointy]
	EvenRToPointy grid.Exact[hex.Offset[hex.Even, hex.Pointy], hex.PointyAxial] = hex.OffsetToAxial[hex.Even, hex.Pointy]
	FlatToOddQ    grid.Exact[hex.FlatAxial, hex.Offset[hex.Odd, hex.Flat]]      = hex.AxialToOffset[hex.Odd, hex.Flat]
	OddQToFlat    grid.Exact[hex.Offset[hex.Odd, hex.Flat], hex.FlatAxial]      = hex.OffsetToAxial[hex.Odd, hex.Flat]
	FlatToEvenQ   grid.Exact[hex.FlatAxial, hex.Offset[hex.Even, hex.Flat]]     = hex.AxialToOffset[hex.Even, hex.Flat]
	EvenQToFlat   grid.Exact[hex.Offset[hex.Even, hex.Flat], hex.FlatAxial]     = hex.OffsetToAxial[hex.Even, hex.Flat]

	PointyToSquare  grid.Approximate[hex.PointyAxial, square.Four]      = HexToSquare[square.FourConnected, hex.Pointy]
	SquareToPointy  grid.Approximate[square.Four, hex.PointyAxial]      = SquareToHex[hex.Pointy, square.FourConnected]
	PointyToIso     grid.Approximate[hex.PointyAxial, iso.DiamondCoord] = HexToIso[iso.Diamond, hex.Pointy]
	IsoToPointy     grid.Approximate[iso.DiamondCoord, hex.PointyAxial] = IsoToHex[hex.Pointy, iso.Diamond]
	TriToSquareFour grid.Approximate[tri.Twelve, square.Four]           = TriToSquare[square.FourConnected, tri.TwelveConnected]
	SquareFourToTri grid.Approximate[square.Four, tri.Twelve]           = SquareToTri[tri.TwelveConnected, square.FourConnected]
)
