package ppu

// renderScanline fills the current LY row of the framebuffer. It is a
// per-line pass rather than a cycle-exact pixel FIFO.
func (p *PPU) renderScanline() {
	if int(p.ly) >= visibleLines {
		return
	}

	var bgIndex [160]uint8 // 2-bit shade index per pixel, used for sprite priority

	if p.lcdc&lcdcBGEnable != 0 || p.cgb {
		p.renderBackground(&bgIndex)
	}
	if p.lcdc&lcdcWindowEnable != 0 && p.wy <= p.ly {
		p.renderWindow(&bgIndex)
	}
	if p.lcdc&lcdcOBJEnable != 0 {
		p.renderSprites(&bgIndex)
	}
}

func (p *PPU) renderBackground(bgIndex *[160]uint8) {
	tileMapBase := uint16(0x9800)
	if p.lcdc&lcdcBGTileMap != 0 {
		tileMapBase = 0x9C00
	}

	y := p.ly + p.scy
	tileRow := uint16(y/8) * 32

	for x := uint8(0); x < 160; x++ {
		scrolledX := x + p.scx
		tileCol := uint16(scrolledX / 8)
		tileAddr := tileMapBase + tileRow + tileCol
		tileIndex := p.vram[0][tileAddr-0x8000]

		shade, color := p.tilePixel(tileIndex, y%8, scrolledX%8, p.lcdc&lcdcTileData != 0, 0)
		bgIndex[x] = shade
		p.screen[p.ly][x] = applyPalette(shade, p.bgp)
		p.rgb[p.ly][x] = color
	}
}

func (p *PPU) renderWindow(bgIndex *[160]uint8) {
	tileMapBase := uint16(0x9800)
	if p.lcdc&lcdcWindowTileMap != 0 {
		tileMapBase = 0x9C00
	}

	windowY := p.ly - p.wy
	tileRow := uint16(windowY/8) * 32

	for x := uint8(0); x < 160; x++ {
		wx := int(x) - (int(p.wx) - 7)
		if wx < 0 {
			continue
		}
		tileCol := uint16(wx / 8)
		tileAddr := tileMapBase + tileRow + tileCol
		tileIndex := p.vram[0][tileAddr-0x8000]

		shade, color := p.tilePixel(tileIndex, windowY%8, uint8(wx%8), p.lcdc&lcdcTileData != 0, 0)
		bgIndex[x] = shade
		p.screen[p.ly][x] = applyPalette(shade, p.bgp)
		p.rgb[p.ly][x] = color
	}
}

// spriteAttr is one 4-byte OAM entry.
type spriteAttr struct {
	y, x, tile, flags uint8
	oamIndex          int
}

func (p *PPU) renderSprites(bgIndex *[160]uint8) {
	tall := p.lcdc&lcdcOBJSize != 0
	height := uint8(8)
	if tall {
		height = 16
	}

	var visible []spriteAttr
	for i := 0; i < OAMSize; i += 4 {
		spriteY := p.oam[i] - 16
		if p.ly < spriteY || p.ly >= spriteY+height {
			continue
		}
		visible = append(visible, spriteAttr{
			y: p.oam[i], x: p.oam[i+1], tile: p.oam[i+2], flags: p.oam[i+3],
			oamIndex: i / 4,
		})
		if len(visible) == 10 {
			break
		}
	}

	// DMG priority: lower X wins; ties broken by OAM index. Sort
	// highest-priority first (index 0).
	for i := 1; i < len(visible); i++ {
		for j := i; j > 0; j-- {
			a, b := visible[j], visible[j-1]
			if higherPriority(a, b) {
				visible[j], visible[j-1] = visible[j-1], visible[j]
			} else {
				break
			}
		}
	}
	// Draw lowest priority first so the highest-priority sprite's
	// pixels end up on top.
	for i := len(visible) - 1; i >= 0; i-- {
		p.drawSprite(visible[i], height, bgIndex)
	}
}

// higherPriority reports whether a should be drawn over b (lower X, or
// equal X and lower OAM index).
func higherPriority(a, b spriteAttr) bool {
	if a.x != b.x {
		return a.x < b.x
	}
	return a.oamIndex < b.oamIndex
}

func (p *PPU) drawSprite(s spriteAttr, height uint8, bgIndex *[160]uint8) {
	spriteY := s.y - 16
	spriteX := int(s.x) - 8

	row := p.ly - spriteY
	flipY := s.flags&0x40 != 0
	flipX := s.flags&0x20 != 0
	behindBG := s.flags&0x80 != 0
	palette := p.obp0
	if s.flags&0x10 != 0 {
		palette = p.obp1
	}

	tile := s.tile
	if height == 16 {
		tile &^= 0x01
	}
	if flipY {
		row = height - 1 - row
	}

	for col := uint8(0); col < 8; col++ {
		screenX := spriteX + int(col)
		if screenX < 0 || screenX >= 160 {
			continue
		}
		sampleCol := col
		if flipX {
			sampleCol = 7 - col
		}

		shade, color := p.tilePixel(tile, row%8, sampleCol, true, int(tile/16))
		if height == 16 && row >= 8 {
			shade, color = p.tilePixel(tile+1, (row-8)%8, sampleCol, true, int(tile/16))
		}
		if shade == 0 {
			continue // sprite color 0 is transparent
		}
		if behindBG && bgIndex[screenX] != 0 {
			continue
		}
		p.screen[p.ly][screenX] = applyPalette(shade, palette)
		p.rgb[p.ly][screenX] = color
	}
}

// tilePixel returns the 2-bit shade index and a 15-bit BGR color of one
// pixel of the given tile; the color is always 0, as no CGB palette
// lookup is done. unsignedAddressing selects
// 0x8000-based indexing (LCDC bit 4 set); otherwise 0x9000-based signed
// indexing is used, per the standard background/window tile data rule.
// Sprites always use unsigned 0x8000-based indexing.
func (p *PPU) tilePixel(tile uint8, row, col uint8, unsignedAddressing bool, _ int) (uint8, uint16) {
	var base uint16
	if unsignedAddressing {
		base = 0x8000 + uint16(tile)*16
	} else {
		base = uint16(0x9000 + int(int8(tile))*16)
	}
	addr := base + uint16(row)*2

	lo := p.vram[0][addr-0x8000]
	hi := p.vram[0][addr+1-0x8000]

	bit := 7 - col
	shade := (hi>>bit&1)<<1 | (lo >> bit & 1)
	return shade, 0 // no CGB palette lookup: the color is always 0
}

// applyPalette maps a 2-bit shade index through a BGP/OBP-style palette
// register (2 bits per shade) to the final shade shown on screen.
func applyPalette(shade uint8, palette uint8) uint8 {
	return (palette >> (shade * 2)) & 0x03
}
