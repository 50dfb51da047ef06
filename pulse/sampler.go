package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
)

func newSamplerCache() *lru.Cache[wgpu.SamplerDescriptor, *wgpu.Sampler] {
	cache, _ := lru.NewWithEvict[wgpu.SamplerDescriptor, *wgpu.Sampler](16, samplerCacheOnEvict)
	return cache
}

func samplerCacheOnEvict(key wgpu.SamplerDescriptor, value *wgpu.Sampler) {
	value.Release()
}

// CachedSampler returns a sampler matching your description. The sampler is owned by
// the Context, you must not call wgpu.Sampler.Release() on it.
func (d *Context) CachedSampler(desc wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	cachedSampler, ok := d.samplers.Get(desc)
	if ok {
		return cachedSampler, nil
	}

	sampler, err := d.Device.CreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}

	d.samplers.Add(desc, sampler)

	return sampler, nil
}
