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

package tix

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/tix/apis"
	"dirpx.dev/tix/builder"
	"dirpx.dev/tix/config"
	"dirpx.dev/tix/internal/logging"
)

func init() {
	b := builder.New()
	cfg := config.Default()
	reg := b.BuildRegistry(cfg, nil, nil)
	st.Store(&state{
		cfg: cfg,
		reg: reg,
		res: b.BuildResolver(cfg, reg, nil, nil),
		bld: b,
	})
}

var (
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("tix: builder returned nil registry")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("tix: builder returned nil resolver")
)

// state is one published naming snapshot. It is never mutated after
// st.Store; writers derive a copy and swap it in.
type state struct {
	cfg apis.Config
	ext any
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	// preg and pres pin the registry and resolver against rebuilds.
	preg bool
	pres bool
}

var (
	// buildMu serializes writers so partial snapshots are never published.
	buildMu sync.Mutex
	st      atomic.Pointer[state]
)

// update derives the next snapshot from the current one under buildMu.
func update(fn func(next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()
	next := *st.Load()
	fn(&next)
	st.Store(&next)
}

// rebuild replaces the unpinned layers of s through its builder. prevReg
// and prevRes are handed to the builder for migration.
func (s *state) rebuild(prevReg apis.Registry, prevRes apis.Resolver) {
	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, prevReg, s.ext)
		if s.reg == nil {
			panic(ErrNilRegistry)
		}
	}
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, s.reg, prevRes, s.ext)
		if s.res == nil {
			panic(ErrNilResolver)
		}
	}
	logging.Named("tix").Debug("naming snapshot rebuilt",
		zap.Bool("registry_pinned", s.preg),
		zap.Bool("resolver_pinned", s.pres),
		zap.Int("registered", s.reg.Count()))
}

// SetAll replaces the whole snapshot. nil cfg, bld, reg or res keep the
// current config and builder or rebuild the layer; a non-nil reg or res is
// installed pinned. ext is always replaced.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	update(func(s *state) {
		prevReg, prevRes := s.reg, s.res
		if cfg != nil {
			s.cfg = *cfg
		}
		if bld != nil {
			s.bld = bld
		}
		s.ext = ext
		s.reg, s.preg = reg, reg != nil
		s.res, s.pres = res, res != nil
		s.rebuild(prevReg, prevRes)
	})
}

// Config returns the active configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig installs cfg and rebuilds the unpinned layers.
func SetConfig(cfg apis.Config) {
	update(func(s *state) {
		s.cfg = cfg
		s.rebuild(s.reg, s.res)
	})
}

// Registry returns the active registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs and pins reg, rebuilding an unpinned resolver on
// top of it. nil is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(s *state) {
		s.reg, s.preg = reg, true
		s.rebuild(nil, s.res)
	})
}

// Resolver returns the active resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs and pins res. nil is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(s *state) {
		s.res, s.pres = res, true
	})
}

// Builder returns the active builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds the unpinned layers with it. nil is
// ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(s *state) {
		s.bld = b
		s.rebuild(s.reg, s.res)
	})
}

// SetExt replaces the extension payload and rebuilds the unpinned layers.
func SetExt[T any](ext T) {
	update(func(s *state) {
		s.ext = ext
		s.rebuild(s.reg, s.res)
	})
}

// ExtAs returns the extension payload as T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether the registry is exempt from rebuilds.
func IsRegistryPinned() bool { return st.Load().preg }

// PinRegistry exempts the registry from rebuilds.
func PinRegistry() { update(func(s *state) { s.preg = true }) }

// UnpinRegistry lets later reconfigurations rebuild the registry.
func UnpinRegistry() { update(func(s *state) { s.preg = false }) }

// IsResolverPinned reports whether the resolver is exempt from rebuilds.
func IsResolverPinned() bool { return st.Load().pres }

// PinResolver exempts the resolver from rebuilds.
func PinResolver() { update(func(s *state) { s.pres = true }) }

// UnpinResolver lets later reconfigurations rebuild the resolver.
func UnpinResolver() { update(func(s *state) { s.pres = false }) }
