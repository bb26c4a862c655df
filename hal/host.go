package hal

import "github.com/rs/zerolog"

type hostHAL struct {
	log zerolog.Logger
	fb  *hostFramebuffer
	kbd *hostKeyboard
	ptr *hostPointer
}

// New returns a host HAL with a width×height framebuffer.
func New(width, height int, log zerolog.Logger) HAL {
	return newHost(width, height, log)
}

func newHost(width, height int, log zerolog.Logger) *hostHAL {
	return &hostHAL{
		log: log.With().Str("component", "hal").Logger(),
		fb:  newHostFramebuffer(width, height),
		kbd: newHostKeyboard(),
		ptr: newHostPointer(),
	}
}

func (h *hostHAL) Logger() zerolog.Logger { return h.log }
func (h *hostHAL) Display() Display       { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input           { return hostInput{kbd: h.kbd, ptr: h.ptr} }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }
