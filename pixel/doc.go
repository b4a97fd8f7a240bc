// Package pixel implements the 1-bit color model and image used for the LED
// matrix and OLED frames.
//
// The types are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel
