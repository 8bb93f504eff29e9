// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"fmt"
	"strings"

	"github.com/elastic/go-ucfg"
	"github.com/elastic/go-ucfg/yaml"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// wrappedConfig is a thin wrapper over *ucfg.Config in the style of
// packetd/confengine.Config: Unpack plus an Enabled convenience
// predicate, rather than exposing the raw ucfg API.
type wrappedConfig struct {
	conf *ucfg.Config
}

func loadConfigPath(path string) (*wrappedConfig, error) {
	c, err := yaml.NewConfigWithFile(path, ucfg.PathSep("."))
	if err != nil {
		return nil, err
	}
	return &wrappedConfig{conf: c}, nil
}

func loadConfigContent(b []byte) (*wrappedConfig, error) {
	c, err := yaml.NewConfig(b)
	if err != nil {
		return nil, err
	}
	return &wrappedConfig{conf: c}, nil
}

func (c *wrappedConfig) Unpack(to interface{}) error {
	return c.conf.Unpack(to)
}

func (c *wrappedConfig) Enabled(key string) bool {
	ok, err := c.conf.Bool(fmt.Sprintf("%s.enabled", key), -1)
	if err != nil {
		return false
	}
	return ok
}

// Config is the CLI's top-level, typed settings, decoded from the
// go-ucfg tree (or its defaults) via Unpack.
type Config struct {
	Input struct {
		Paths []string `config:"paths"`
		Watch bool     `config:"watch"`
		Addr  string   `config:"addr"` // TCP listen address; decoded but not used by any command
	} `config:"input"`

	Headers struct {
		Capacity       int  `config:"capacity"`
		ConsumeTrailer bool `config:"consumeTrailer"`
	} `config:"headers"`

	Log LogOptions `config:"log"`

	Metrics struct {
		Addr string `config:"addr"`
	} `config:"metrics"`
}

func defaultConfig() Config {
	var c Config
	c.Headers.Capacity = 64
	c.Log = defaultLogOptions()
	c.Metrics.Addr = ":9090"
	return c
}

// applyOverrides decodes "--set key.path=value" flags onto cfg.
// go-ucfg's Unpack is the primary decode path (above); this is the
// secondary, map-shaped override path packetd also exposes, backed by
// mapstructure for the decode and cast for per-field type coercion of
// what otherwise arrives as a bare string.
func applyOverrides(cfg *Config, overrides []string) error {
	tree := map[string]interface{}{}
	for _, kv := range overrides {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, want key=value", kv)
		}
		setPath(tree, strings.Split(k, "."), coerce(v))
	}
	if len(tree) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(tree)
}

func setPath(tree map[string]interface{}, path []string, value interface{}) {
	if len(path) == 1 {
		tree[path[0]] = value
		return
	}
	child, ok := tree[path[0]].(map[string]interface{})
	if !ok {
		child = map[string]interface{}{}
		tree[path[0]] = child
	}
	setPath(child, path[1:], value)
}

// coerce normalizes a raw --set value to bool/int/string using cast,
// the same way packetd's config layer does for loosely-typed CLI
// overrides.
func coerce(v string) interface{} {
	if b, err := cast.ToBoolE(v); err == nil && (v == "true" || v == "false") {
		return b
	}
	if n, err := cast.ToIntE(v); err == nil {
		return n
	}
	return v
}
