package nes

import "github.com/example/nesgo/internal/busmem"

// controller implements the first joypad port: an 8-bit shift register
// latched by a write to 0x4016 (bit0) and shifted out one bit per read,
// the button-bit layout teacher's console/controller.go uses (A, B,
// Select, Start, Up, Down, Left, Right). Polling the actual input
// device (ebiten keys, a test harness's fixed script) is the caller's
// job via SetButtons; this type only knows about the shift register
// protocol.
type controller struct {
	strobe  bool
	buttons uint8
	latched uint8
	idx     uint8
}

func newController() *controller { return &controller{} }

func (c *controller) setButtons(mask uint8) { c.buttons = mask }

func (c *controller) write(val uint8) {
	c.strobe = val&1 != 0
	if c.strobe {
		c.latched = c.buttons
		c.idx = 0
	}
}

func (c *controller) read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	if c.idx > 7 {
		return 1
	}
	bit := (c.latched >> c.idx) & 1
	c.idx++
	return bit
}

func (c *controller) connect(bus *busmem.Space) error {
	if err := bus.SubscribeWrite(0x4016, 0x4017, func(addr uint16, v uint8) { c.write(v) }); err != nil {
		return err
	}
	return bus.SubscribeRead(0x4016, 0x4017, func(addr uint16) uint8 { return c.read() })
}
