/*
Package tileset implements the 2bpp tile encoder and decoder and renders
tile tables as images.

Each 8 by 8 tile is written as 16 bytes, two bytes per row. The first byte of
a row holds the low bit of each pixel's shade and the second byte the high
bit, with the leftmost pixel in the most significant bit. There is no header
and no compression so a tileset of n tiles is exactly 16n bytes.

Rendered tilesets place 16 tiles per row, so an image is 128 pixels wide.
*/
package tileset

const (
	tileWidth     = 8
	tileHeight    = tileWidth
	bytesPerRow   = 2
	bytesPerTile  = tileHeight * bytesPerRow
	tilesPerRow   = 16
	pixelX        = tileWidth * tilesPerRow
	shadeLowMask  = 0x01
	shadeHighMask = 0x02
)
