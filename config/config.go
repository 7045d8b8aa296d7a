/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config builds apis.Config values from functional options.
package config

import (
	"dirpx.dev/tix/apis"
)

const (
	// DefaultIncludeBuiltins lets nearest-name queries answer "int" etc.
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap bounds container unwrapping. Eight layers of
	// ptr/slice/map nesting is already pathological.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem prefers V of map[K]V.
	DefaultMapPreferElem = true
	// DefaultFullPackagePath shortens import paths to package names.
	DefaultFullPackagePath = false
	// DefaultStripTypeArgs keeps generic instantiation arguments.
	DefaultStripTypeArgs = false
)

// Option mutates a Config under construction.
type Option func(*apis.Config)

// New returns Default with opts applied in order.
func New(opts ...Option) apis.Config {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// Default returns the configuration used when none is given.
func Default() apis.Config {
	return apis.Config{
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
		FullPackagePath: DefaultFullPackagePath,
		StripTypeArgs:   DefaultStripTypeArgs,
	}
}

// WithIncludeBuiltins sets IncludeBuiltins.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) { c.IncludeBuiltins = include }
}

// WithMaxUnwrap sets MaxUnwrap. A negative value means the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			max = DefaultMaxUnwrap
		}
		c.MaxUnwrap = max
	}
}

// WithMapPreferElem sets MapPreferElem.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) { c.MapPreferElem = prefer }
}

// WithFullPackagePath sets FullPackagePath.
func WithFullPackagePath(full bool) Option {
	return func(c *apis.Config) { c.FullPackagePath = full }
}

// WithStripTypeArgs sets StripTypeArgs.
func WithStripTypeArgs(strip bool) Option {
	return func(c *apis.Config) { c.StripTypeArgs = strip }
}
