//go:build linux
// +build linux

package micro

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

func setLine(chipName string, offset int, value int) error {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return fmt.Errorf("cannot open gpio chip %s: %w", chipName, err)
	}
	defer chip.Close()

	line, err := chip.RequestLine(offset, gpiocdev.AsOutput(value))
	if err != nil {
		return fmt.Errorf("cannot request line %d of %s: %w", offset, chipName, err)
	}
	defer line.Close()

	return line.SetValue(value)
}
