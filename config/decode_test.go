// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package config

import (
	"os"
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
)

func TestEnvDecoder(t *testing.T) {
	assert := assert.New(t)

	defer os.Unsetenv("UPLIFT_LOG_LEVEL")
	os.Setenv("UPLIFT_LOG_LEVEL", "warning")

	target := defaultConfigData()
	decoder := EnvDecoder{}

	assert.Nil(decoder.Decode(&DecoderOptions{}, target))
	assert.Equal("warning", target.LogLevel)

	assert.NotNil(decoder.Decode(nil, target))
}

func TestHclDecoder(t *testing.T) {
	assert := assert.New(t)

	src := []byte(`log_level = "error"`)
	fileHCL, diags := hclparse.NewParser().ParseHCL(src, "test.hcl")
	assert.False(diags.HasErrors())

	target := defaultConfigData()
	decoder := HclDecoder{EvalContext: CreateHclContext()}

	assert.Nil(decoder.Decode(&DecoderOptions{Input: fileHCL.Body}, target))
	assert.Equal("error", target.LogLevel)

	// nil input leaves the target unaffected
	fresh := defaultConfigData()
	assert.Nil(decoder.Decode(&DecoderOptions{}, fresh))
	assert.Equal("info", fresh.LogLevel)

	assert.NotNil(decoder.Decode(nil, target))
}

func TestHclDecoder_EnvInterpolation(t *testing.T) {
	assert := assert.New(t)

	defer os.Unsetenv("UPLIFT_TEST_LOG_LEVEL")
	os.Setenv("UPLIFT_TEST_LOG_LEVEL", "debug")

	src := []byte(`log_level = env("UPLIFT_TEST_LOG_LEVEL")`)
	fileHCL, diags := hclparse.NewParser().ParseHCL(src, "test.hcl")
	assert.False(diags.HasErrors())

	target := defaultConfigData()
	decoder := HclDecoder{EvalContext: CreateHclContext()}

	assert.Nil(decoder.Decode(&DecoderOptions{Input: fileHCL.Body}, target))
	assert.Equal("debug", target.LogLevel)
}

func TestEnvVarsMap(t *testing.T) {
	assert := assert.New(t)

	vars := envVarsMap([]string{"A=1", "B=x=y", "MALFORMED"})
	assert.Equal("1", vars["A"].AsString())
	assert.Equal("x=y", vars["B"].AsString())
	_, ok := vars["MALFORMED"]
	assert.False(ok)
}
