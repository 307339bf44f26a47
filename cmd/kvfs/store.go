package main

import (
	"fmt"

	"github.com/rsbellis/kvfs/config"
	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/factory"
	"github.com/rsbellis/kvfs/store/storecache/memory"
	"github.com/rsbellis/kvfs/store/storecache/rediscache"
	"github.com/rsbellis/kvfs/store/storemw"

	// Anonymous imports register each driver with store/factory under its
	// name, the way cmd/registry/main.go imports its storage drivers.
	_ "github.com/rsbellis/kvfs/store/dnsdriver"
	_ "github.com/rsbellis/kvfs/store/filesystem"
	_ "github.com/rsbellis/kvfs/store/ipfsblock"
	_ "github.com/rsbellis/kvfs/store/memcached"
	_ "github.com/rsbellis/kvfs/store/s3driver"
)

// buildStore resolves cfg's configured driver by name via store/factory,
// applies logging/metrics middleware, an optional read-through cache, and
// wraps the result in a store.Store.
func buildStore(cfg *config.Configuration) (*store.Store, error) {
	name := cfg.Store.Type()
	if name == "" {
		return nil, fmt.Errorf("kvfs: no storage driver configured")
	}

	driver, err := factory.Create(name, cfg.Store.Parameters())
	if err != nil {
		return nil, fmt.Errorf("kvfs: construct %s driver: %w", name, err)
	}

	driver = storemw.WithLogging(driver)
	driver = storemw.WithMetrics(driver)

	if cache := cfg.Store.CacheParameters(); len(cache) > 0 {
		driver, err = applyCache(driver, cache)
		if err != nil {
			return nil, err
		}
	}

	return store.New(driver), nil
}

func applyCache(driver store.Driver, params config.Parameters) (store.Driver, error) {
	// gopkg.in/yaml.v2 decodes nested mappings as map[interface{}]interface{}.
	norm := make(config.Parameters, len(params))
	for name, v := range params {
		if m, ok := v.(map[interface{}]interface{}); ok {
			conv := make(map[string]interface{}, len(m))
			for k, val := range m {
				conv[fmt.Sprint(k)] = val
			}
			v = conv
		}
		norm[name] = v
	}
	params = norm

	if mem, ok := params["memory"].(map[string]interface{}); ok {
		size, _ := mem["size"].(int)
		return memory.New(driver, size)
	}
	if rds, ok := params["redis"].(map[string]interface{}); ok {
		addr, _ := rds["addr"].(string)
		if addr == "" {
			return nil, fmt.Errorf("kvfs: redis cache requires an addr parameter")
		}
		return rediscache.New(driver, addr), nil
	}
	return nil, fmt.Errorf("kvfs: cache parameters must name exactly one of memory or redis")
}
