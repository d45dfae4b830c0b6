//go:build !linux
// +build !linux

package micro

func setLine(chipName string, offset int, value int) error {
	return ErrUnsupported
}
