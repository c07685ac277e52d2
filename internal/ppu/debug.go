package ppu

import (
	"image"
	"image/color"
)

// DumpTiledata renders the 384-tile (768 on CGB) tile data area as a
// 32-tiles-wide grayscale image, so a host tool can dump VRAM contents
// to a PNG without reaching into package-private state.
func (p *PPU) DumpTiledata() image.Image {
	banks := 1
	if p.cgb {
		banks = 2
	}

	const tilesPerBank = 384
	rows := (tilesPerBank + 31) / 32
	img := image.NewGray(image.Rect(0, 0, 32*8, rows*8*banks))

	for bank := 0; bank < banks; bank++ {
		for i := 0; i < tilesPerBank; i++ {
			x := (i % 32) * 8
			y := (i/32)*8 + bank*rows*8
			p.drawTileGray(img, bank, uint16(i), x, y)
		}
	}
	return img
}

// DumpTileMap renders both background tile maps (0x9800 and 0x9C00)
// stacked vertically.
func (p *PPU) DumpTileMap() image.Image {
	img := image.NewGray(image.Rect(0, 0, 256, 512))
	p.drawTileMap(img, 0x9800, 0)
	p.drawTileMap(img, 0x9C00, 256)
	return img
}

func (p *PPU) drawTileMap(img *image.Gray, base uint16, yOffset int) {
	unsigned := p.lcdc&lcdcTileData != 0
	for row := 0; row < 32; row++ {
		for col := 0; col < 32; col++ {
			tileIndex := p.vram[0][base+uint16(row)*32+uint16(col)-0x8000]
			for py := 0; py < 8; py++ {
				for px := 0; px < 8; px++ {
					shade, _ := p.tilePixel(tileIndex, uint8(py), uint8(px), unsigned, 0)
					img.SetGray(col*8+px, yOffset+row*8+py, grayShade(shade))
				}
			}
		}
	}
}

func (p *PPU) drawTileGray(img *image.Gray, bank int, tile uint16, x, y int) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			lo := p.vram[bank][uint16(tile)*16+uint16(row)*2]
			hi := p.vram[bank][uint16(tile)*16+uint16(row)*2+1]
			bit := 7 - col
			shade := (hi>>uint(bit)&1)<<1 | (lo >> uint(bit) & 1)
			img.SetGray(x+col, y+row, grayShade(shade))
		}
	}
}

// grayShade maps a 2-bit shade index to a grayscale level, lightest shade
// first, matching the on-screen DMG palette ordering.
func grayShade(shade uint8) color.Gray {
	switch shade {
	case 0:
		return color.Gray{Y: 0xFF}
	case 1:
		return color.Gray{Y: 0xAA}
	case 2:
		return color.Gray{Y: 0x55}
	default:
		return color.Gray{Y: 0x00}
	}
}
