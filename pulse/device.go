package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Queue, Surface and active Adapter.
// Every resource created through a Context is expected to be released
// before the Context itself.
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter

	samplers *lru.Cache[wgpu.SamplerDescriptor, *wgpu.Sampler]
}

// New acquires an adapter and a device that can render to the surface
// described by sd. Without a descriptor the context has no surface and only
// renders to textures. Nothing is returned if any step fails.
func New(sd *wgpu.SurfaceDescriptor) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{
		samplers: newSamplerCache(),
	}

	// create the webgpu instance
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	if sd != nil {
		// create a Surface based on the window or canvas
		st.Surface, err = checkSurface(instance.CreateSurface(sd))
		if err != nil {
			return st, err
		}
	}

	// create an adapter that can render to the Surface
	st.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    st.Surface,
	})

	if err != nil {
		return st, fmt.Errorf("request adapter: %w: %w", ErrNoAdapter, err)
	}

	// get a Device with the default settings
	st.Device, err = st.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Quad.Device",
	})

	if err != nil {
		return st, fmt.Errorf("request device: %w: %w", ErrNoDevice, err)
	}

	st.Queue = st.Device.GetQueue()

	slog.Info("WebGPU initialized")

	return st, nil
}

func checkSurface(surface *wgpu.Surface) (*wgpu.Surface, error) {
	if surface == nil {
		return nil, fmt.Errorf("create surface: %w", ErrSurfaceConfig)
	}

	return surface, nil
}

// Release releases all cached objects and the underlying webgpu handles.
func (d *Context) Release() {
	if d.samplers != nil {
		// evicts and releases all cached samplers
		d.samplers.Purge()
	}

	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}
