//go:build !tinygo && !cgo

package hal

func (h *hostHAL) enableAudio() error { return ErrNotImplemented }
