// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package valueprovider

import (
	"os"
)

// Provider describes the interface for configuration values that are resolved
// at the point of use rather than at construction time. The boolean reports
// whether the value is set at all.
type Provider interface {
	Resolve() (string, bool)
}

// Static wraps a literal configuration value
type Static string

// Resolve returns the wrapped value; an empty literal counts as unset
func (s Static) Resolve() (string, bool) {
	if s == "" {
		return "", false
	}
	return string(s), true
}

// FromEnv resolves a value from the named environment variable on every call
type FromEnv string

// Resolve looks the variable up in the environment
func (e FromEnv) Resolve() (string, bool) {
	v, ok := os.LookupEnv(string(e))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func() (string, bool)

// Resolve calls the wrapped function
func (f ProviderFunc) Resolve() (string, bool) {
	return f()
}

// Unset is a provider that never yields a value
var Unset = ProviderFunc(func() (string, bool) { return "", false })
