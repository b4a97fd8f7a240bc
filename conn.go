package display

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"

	"github.com/BeatGlow/reaction/conn"
)

// Conn errors.
var (
	ErrResetPin = errors.New("display: reset GPIO pin is invalid")
)

// I²C control bytes.
const (
	i2cControlCommand = 0x00
	i2cControlData    = FrameCommand
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	Peripheral

	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes, prefixed with the data control byte.
	Data(...byte) error
}

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Device is the I²C device, use -1 to use the first available device.
	Device int

	// Addr is the 7-bit I²C address.
	Addr uint16

	// Reset pin, optional.
	Reset gpio.PinOut
}

// DefaultI2CConfig matches a 128x64 SSD1306 module strapped to 0x3C (0x78 in 8-bit notation).
var DefaultI2CConfig = I2CConfig{
	Device: -1,
	Addr:   0x3c,
}

type i2cConn struct {
	*conn.I2C
	reset gpio.PinOut
}

// OpenI2C opens the I²C bus described by config, nil uses [DefaultI2CConfig].
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}
	if config.Addr == 0 {
		config.Addr = DefaultI2CConfig.Addr
	}

	c, err := conn.OpenI2C(config.Device, config.Addr)
	if err != nil {
		return nil, err
	}

	return &i2cConn{
		I2C:   c,
		reset: config.Reset,
	}, nil
}

// NewI2C returns a Conn for the device at addr on bus. The reset pin may be nil.
func NewI2C(bus i2c.Bus, addr uint16, reset gpio.PinOut) Conn {
	return &i2cConn{
		I2C:   conn.NewI2C(bus, addr),
		reset: reset,
	}
}

func (c *i2cConn) Command(cmnd byte, args ...byte) (err error) {
	_, err = c.I2C.Write(append([]byte{i2cControlCommand, cmnd}, args...))
	return
}

func (c *i2cConn) Data(data ...byte) (err error) {
	_, err = c.I2C.Write(append([]byte{i2cControlData}, data...))
	return
}

func (c *i2cConn) SendData(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if _, err := c.I2C.Write(buf); err != nil {
		return fmt.Errorf("display: send %d bytes: %w", len(buf), err)
	}
	return nil
}

func (c *i2cConn) Reset(level gpio.Level) error {
	if c.reset == nil || c.reset == gpio.INVALID {
		return ErrResetPin
	}
	return c.reset.Out(level)
}
