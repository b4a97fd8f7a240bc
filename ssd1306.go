package display

import (
	"fmt"
)

const (
	ssd1306DefaultWidth    = 128
	ssd1306DefaultHeight   = 64
	ssd1306DefaultContrast = 0xCF
)

// SSD1306Display is a Solomon Systech SSD1306 OLED panel. It keeps no frame
// between draws: every draw call encodes and transmits a new frame.
type SSD1306Display struct {
	c          Conn
	width      int
	height     int
	addressing Addressing
	halted     bool
}

// SSD1306 initialises the panel behind conn. Zero width or height in config
// use the 128x64 default.
func SSD1306(conn Conn, config *Config) (*SSD1306Display, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	if config.Width == 0 {
		config.Width = ssd1306DefaultWidth
	}
	if config.Height == 0 {
		config.Height = ssd1306DefaultHeight
	}

	d := &SSD1306Display{
		c:          conn,
		width:      config.Width,
		height:     config.Height,
		addressing: config.Addressing,
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *SSD1306Display) String() string {
	return fmt.Sprintf("SSD1306 OLED %dx%d", d.width, d.height)
}

func (d *SSD1306Display) init() (err error) {
	var (
		multiplexRatio  = byte(d.height - 1)
		displayClockDiv byte
		comPins         byte
		colStart        byte
	)
	switch {
	case d.width == 64 && d.height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case d.width == 64 && d.height == 48:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case d.width == 96 && d.height == 16:
		displayClockDiv, comPins, colStart = 0x60, 0x02, 0
	case d.width == 128 && d.height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x02, 0
	case d.width == 128 && d.height == 64:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 0
	default:
		return fmt.Errorf("%w: SSD1306 %dx%d", ErrSize, d.width, d.height)
	}

	if err = d.commands(
		[]byte{ssd1xxxSetDisplayOff},
		[]byte{ssd1xxxSetDisplayClockDiv, displayClockDiv},
		[]byte{ssd1xxxSetMultiplexRatio, multiplexRatio},
		[]byte{ssd1xxxSetDisplayOffset, 0x00},
		[]byte{ssd1xxxSetStartLine},
		[]byte{ssd1xxxSetChargePump, 0x14},
		[]byte{ssd1xxxSetMemoryMode, 0x00},
		[]byte{ssd1xxxSetSegmentRemap},
		[]byte{ssd1xxxSetComScanDec},
		[]byte{ssd1xxxSetComPins, comPins},
		[]byte{ssd1xxxSetPrecharge, 0xF1},
		[]byte{ssd1xxxSetVCOMDeselect, 0x40},
		[]byte{ssd1xxxSetDisplayAllOnResume},
		[]byte{ssd1xxxSetNormalDisplay},
		// Horizontal addressing over the whole panel, so a single frame
		// transfer covers every page.
		[]byte{ssd1xxxSetColumnAddr, colStart, colStart + byte(d.width) - 1},
		[]byte{ssd1xxxSetPageAddr, 0x00, byte(d.height>>3) - 1},
	); err != nil {
		return
	}

	if err = d.SetContrast(ssd1306DefaultContrast); err != nil {
		return
	}
	if err = d.Clear(); err != nil {
		return
	}
	return d.Show(true)
}

func (d *SSD1306Display) commands(commands ...[]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return fmt.Errorf("display: command %#02x: %w", command[0], err)
		}
	}
	return
}

// Width of the panel in pixels.
func (d *SSD1306Display) Width() int { return d.width }

// Height of the panel in pixels.
func (d *SSD1306Display) Height() int { return d.height }

// NewFrame allocates an empty frame sized for the panel.
func (d *SSD1306Display) NewFrame() (*Frame, error) {
	return NewFrame(d.width, d.height, d.addressing)
}

// Send transmits a frame built by the caller.
func (d *SSD1306Display) Send(f *Frame) error {
	if d.halted {
		return ErrHalted
	}
	if f.Len() != FrameSize(d.width, d.height) {
		return fmt.Errorf("%w: frame %s does not fit %s", ErrSize, f, d)
	}
	return Transmit(d.c, f)
}

func (d *SSD1306Display) DrawPixel(x, y int) error {
	f, err := d.NewFrame()
	if err != nil {
		return err
	}
	if err = f.SetPixel(x, y); err != nil {
		return err
	}
	return d.Send(f)
}

func (d *SSD1306Display) Fill(value byte) error {
	f, err := d.NewFrame()
	if err != nil {
		return err
	}
	f.Fill(value)
	return d.Send(f)
}

func (d *SSD1306Display) Clear() error {
	return d.Fill(0x00)
}

// Show toggles the display on or off.
func (d *SSD1306Display) Show(show bool) error {
	if d.halted {
		return ErrHalted
	}
	if show {
		return d.c.Command(ssd1xxxSetDisplayOn)
	}
	return d.c.Command(ssd1xxxSetDisplayOff)
}

// Invert swaps lit and unlit pixels in hardware.
func (d *SSD1306Display) Invert(invert bool) error {
	if d.halted {
		return ErrHalted
	}
	if invert {
		return d.c.Command(ssd1xxxSetInvertDisplay)
	}
	return d.c.Command(ssd1xxxSetNormalDisplay)
}

func (d *SSD1306Display) SetContrast(level uint8) error {
	if d.halted {
		return ErrHalted
	}
	return d.c.Command(ssd1xxxSetContrast, level)
}

// Close switches the panel off and closes the connection.
func (d *SSD1306Display) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

// Interface checks.
var (
	_ Drawer = (*SSD1306Display)(nil)
)
