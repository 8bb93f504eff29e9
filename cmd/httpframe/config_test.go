// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverridesSimpleKey(t *testing.T) {
	cfg := defaultConfig()
	err := applyOverrides(&cfg, []string{"log.level=debug"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyOverridesNestedBoolAndInt(t *testing.T) {
	cfg := defaultConfig()
	err := applyOverrides(&cfg, []string{"input.watch=true", "headers.capacity=128"})
	require.NoError(t, err)
	assert.True(t, cfg.Input.Watch)
	assert.Equal(t, 128, cfg.Headers.Capacity)
}

func TestApplyOverridesRejectsMissingEquals(t *testing.T) {
	cfg := defaultConfig()
	err := applyOverrides(&cfg, []string{"log.level"})
	require.Error(t, err)
}

func TestApplyOverridesNoOverridesIsNoop(t *testing.T) {
	cfg := defaultConfig()
	before := cfg
	require.NoError(t, applyOverrides(&cfg, nil))
	assert.Equal(t, before, cfg)
}

func TestCoerceRecognizesBoolIntAndString(t *testing.T) {
	assert.Equal(t, true, coerce("true"))
	assert.Equal(t, false, coerce("false"))
	assert.Equal(t, 7, coerce("7"))
	assert.Equal(t, "debug", coerce("debug"))
}

func TestSetPathBuildsNestedMaps(t *testing.T) {
	tree := map[string]interface{}{}
	setPath(tree, []string{"a", "b", "c"}, 1)
	setPath(tree, []string{"a", "b", "d"}, 2)

	ab, ok := tree["a"].(map[string]interface{})
	require.True(t, ok)
	bb, ok := ab["b"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1, bb["c"])
	assert.Equal(t, 2, bb["d"])
}

func TestDefaultConfigHasUsableDefaults(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, 64, cfg.Headers.Capacity)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Metrics.Addr)
}
