package imaging

import "image"

// TileOrigins returns the top-left corners of the tiles needed to cover an
// area of the given size with tiles of the given size, edge to edge.
//
// Tiles start at (0,0) and advance by the tile width horizontally and the tile
// height vertically. When the area does not divide evenly, the last column or
// row starts inside the area and overhangs its right or bottom edge; callers
// clip those tiles. Origins are ordered column by column, top to bottom.
//
// A tile with a zero or negative dimension yields no origins.
func TileOrigins(area, tile image.Point) []image.Point {
	if tile.X <= 0 || tile.Y <= 0 || area.X <= 0 || area.Y <= 0 {
		return nil
	}

	cols := (area.X + tile.X - 1) / tile.X
	rows := (area.Y + tile.Y - 1) / tile.Y
	origins := make([]image.Point, 0, cols*rows)

	for x := 0; x < area.X; x += tile.X {
		for y := 0; y < area.Y; y += tile.Y {
			origins = append(origins, image.Pt(x, y))
		}
	}

	return origins
}
