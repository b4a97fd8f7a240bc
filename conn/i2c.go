// Package conn wraps the periph buses the display talks over.
package conn

import (
	"fmt"
	"io"
	"strconv"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// I2C is a single device on an I²C bus.
type I2C struct {
	bus i2c.Bus
	dev *i2c.Dev
}

// OpenI2C opens the numbered I²C bus, or the first available bus if device is negative.
func OpenI2C(device int, addr uint16) (*I2C, error) {
	var (
		bus i2c.BusCloser
		err error
	)
	if device < 0 {
		bus, err = i2creg.Open("")
	} else {
		bus, err = i2creg.Open(strconv.Itoa(device))
	}
	if err != nil {
		return nil, fmt.Errorf("conn: open I²C bus: %w", err)
	}
	return NewI2C(bus, addr), nil
}

// NewI2C addresses addr on an already opened bus.
func NewI2C(bus i2c.Bus, addr uint16) *I2C {
	return &I2C{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: addr},
	}
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s addr %#02x", c.bus, c.dev.Addr)
}

// Close closes the bus if it is closable.
func (c *I2C) Close() error {
	if closer, ok := c.bus.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Write sends p as one transaction.
func (c *I2C) Write(p []byte) (int, error) {
	if err := c.dev.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}
