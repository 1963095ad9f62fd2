// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Decoder is the interface that wraps the Decode method.
type Decoder interface {
	// Decode decodes onto target given DecoderOptions.
	// The target argument must be a pointer to an allocated structure.
	Decode(opts *DecoderOptions, target interface{}) error
}

// DecoderOptions represent the options for a Decoder.
// The zero value means nil-input, which the Decoders must accept.
type DecoderOptions struct {
	Input hcl.Body
}

// EnvDecoder implements Decoder by reading the process environment.
type EnvDecoder struct{}

// Decode populates target from environment variables given the `env` tags of
// its fields. The target argument must be a pointer to an allocated structure.
func (e *EnvDecoder) Decode(opts *DecoderOptions, target interface{}) error {
	if opts == nil {
		return errors.New("missing DecoderOptions for EnvDecoder")
	}
	if target == nil {
		return nil
	}

	return env.Parse(target)
}

// HclDecoder implements Decoder for HCL configuration files.
type HclDecoder struct {
	EvalContext *hcl.EvalContext
}

// Decode populates target given HCL input through DecoderOptions.
// A nil input leaves the target unaffected.
func (h *HclDecoder) Decode(opts *DecoderOptions, target interface{}) error {
	if opts == nil {
		return errors.New("missing DecoderOptions for HclDecoder")
	}

	src := opts.Input
	if src == nil || target == nil {
		return nil
	}

	diag := gohcl.DecodeBody(src, h.EvalContext, target)
	if len(diag) > 0 {
		return diag
	}

	return nil
}

// CreateHclContext creates the *hcl.EvalContext used in decoding HCL.
// Users can reference environment variables either as `env("MY_VAR")` or as
// `env.MY_VAR` inside the configuration file.
func CreateHclContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": envFunc(),
		},
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(envVarsMap(os.Environ())),
		},
	}
}

// envFunc constructs a cty.Function that looks a key up in the environment.
func envFunc() function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{
				Name:         "key",
				Type:         cty.String,
				AllowNull:    false,
				AllowUnknown: false,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(os.Getenv(args[0].AsString())), nil
		},
	})
}

// envVarsMap converts the environment to a map usable in hcl.EvalContext.
func envVarsMap(environ []string) map[string]cty.Value {
	envMap := make(map[string]cty.Value)
	for _, s := range environ {
		for j := 1; j < len(s); j++ {
			if s[j] == '=' {
				envMap[s[0:j]] = cty.StringVal(s[j+1:])
				break
			}
		}
	}
	return envMap
}
