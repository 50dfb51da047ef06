package pulse

import "errors"

var (
	// ErrNoAdapter is returned if no graphics adapter compatible
	// with the surface could be acquired.
	ErrNoAdapter = errors.New("no compatible graphics adapter")

	// ErrNoDevice is returned if the adapter refused to create a device.
	ErrNoDevice = errors.New("device creation refused")

	// ErrSurfaceConfig is returned if the surface could not be created
	// or does not offer any usable configuration for the adapter.
	ErrSurfaceConfig = errors.New("no surface configuration available")

	// ErrNoFrame is returned if the surface could not supply
	// the next presentable image.
	ErrNoFrame = errors.New("surface cannot supply a frame")

	// ErrDecodeImage is returned if image bytes could not be decoded.
	ErrDecodeImage = errors.New("image not decodable")
)
