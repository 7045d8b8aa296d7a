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

// Package builder assembles the default registry and resolver.
package builder

import (
	"slices"

	"go.uber.org/zap"

	"dirpx.dev/tix/apis"
	"dirpx.dev/tix/internal/logging"
	"dirpx.dev/tix/registry"
	"dirpx.dev/tix/resolver"
	"dirpx.dev/tix/strategy"
)

// Ext is the extension payload the default builder understands. Its
// strategies run before the default chain.
type Ext struct {
	Strategies []apis.Strategy
}

// New returns the default apis.Builder.
func New() apis.Builder {
	return builder{}
}

type builder struct{}

// BuildRegistry returns a fresh registry holding prev's entries.
func (builder) BuildRegistry(_ apis.Config, prev apis.Registry, _ any) apis.Registry {
	reg := registry.New()
	if prev == nil {
		return reg
	}
	for _, e := range prev.Entries() {
		if err := reg.Register(e.Type, e.Name); err != nil {
			logging.Named("builder").Warn("dropped registry entry",
				zap.Stringer("type", e.Type), zap.Error(err))
		}
	}
	return reg
}

// BuildResolver returns the chain ext strategies -> Namer -> Registry ->
// Std -> Extract.
func (builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver, ext any) apis.Resolver {
	var extra []apis.Strategy
	switch e := ext.(type) {
	case Ext:
		extra = e.Strategies
	case *Ext:
		if e != nil {
			extra = e.Strategies
		}
	}
	return resolver.New(slices.Concat(extra, []apis.Strategy{
		strategy.NewNamerStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewStdStrategy(),
		strategy.NewExtractStrategy(),
	})...)
}
