package bitmap

import "image/color"

// PaletteSize is the number of colors a pixel can index.
const PaletteSize = 16

// Transparent is the palette index of the empty pixel.
const Transparent uint8 = 0

// Palette is the 16-color arcade palette. Entry 0 is fully transparent;
// the remaining entries are distinct opaque colors so conversions through
// image/color round-trip to the same index.
var Palette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0x00},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
	color.RGBA{0xff, 0x21, 0x21, 0xff},
	color.RGBA{0xff, 0x93, 0xc4, 0xff},
	color.RGBA{0xff, 0x81, 0x35, 0xff},
	color.RGBA{0xff, 0xf6, 0x09, 0xff},
	color.RGBA{0x24, 0x9c, 0xa3, 0xff},
	color.RGBA{0x78, 0xdc, 0x52, 0xff},
	color.RGBA{0x00, 0x3f, 0xad, 0xff},
	color.RGBA{0x87, 0xf2, 0xff, 0xff},
	color.RGBA{0x8e, 0x2e, 0xc4, 0xff},
	color.RGBA{0xa4, 0x83, 0x9f, 0xff},
	color.RGBA{0x5c, 0x40, 0x6c, 0xff},
	color.RGBA{0xe5, 0xcd, 0xc4, 0xff},
	color.RGBA{0x91, 0x46, 0x3d, 0xff},
	color.RGBA{0x00, 0x00, 0x00, 0xff},
}
