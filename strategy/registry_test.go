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

package strategy_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/tix/apis"
	"dirpx.dev/tix/registry"
	"dirpx.dev/tix/strategy"
)

type A struct{}
type G[T any] struct{}

func TestRegistryStrategy(t *testing.T) {
	reg := registry.New()
	if err := reg.Register(reflect.TypeFor[A](), "domain.A"); err != nil {
		t.Fatalf("Register(A): %v", err)
	}
	s := strategy.NewRegistryStrategy(reg)

	if got, ok := s.TryResolve(A{}, apis.Config{}); !ok || got != "domain.A" {
		t.Fatalf("TryResolve(A) = (%q,%v), want (domain.A,true)", got, ok)
	}
	if got, ok := s.TryResolveType(reflect.TypeFor[A](), apis.Config{}); !ok || got != "domain.A" {
		t.Fatalf("TryResolveType(A) = (%q,%v), want (domain.A,true)", got, ok)
	}

	misses := []any{&A{}, []A{}, map[string]A{}, G[int]{}, nil}
	for _, v := range misses {
		if got, ok := s.TryResolve(v, apis.Config{}); ok {
			t.Fatalf("TryResolve(%T) = %q, want miss", v, got)
		}
	}
}

func TestRegistryStrategyNilRegistry(t *testing.T) {
	s := strategy.NewRegistryStrategy(nil)
	if _, ok := s.TryResolve(A{}, apis.Config{}); ok {
		t.Fatal("nil registry handled a value")
	}
}

func TestStdStrategy(t *testing.T) {
	s := strategy.NewStdStrategy()
	cases := map[reflect.Type]string{
		reflect.TypeFor[int]():            "int",
		reflect.TypeFor[[]byte]():         "[]byte",
		reflect.TypeFor[map[string]any](): "map[string]any",
		reflect.TypeFor[error]():          "error",
	}
	for typ, want := range cases {
		if got, ok := s.TryResolveType(typ, apis.Config{}); !ok || got != want {
			t.Fatalf("TryResolveType(%v) = (%q,%v), want (%q,true)", typ, got, ok, want)
		}
	}
	if _, ok := s.TryResolve(A{}, apis.Config{}); ok {
		t.Fatal("std strategy handled a user type")
	}
}

func TestRegistryStrategyConcurrent(t *testing.T) {
	reg := registry.New()
	_ = reg.Register(reflect.TypeFor[A](), "domain.A")
	_ = reg.Register(reflect.TypeFor[string](), "domain.string")
	s := strategy.NewRegistryStrategy(reg)

	types := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[string](), reflect.TypeFor[*A]()}
	want := []string{"domain.A", "domain.string", ""}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan string, workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				idx := (i + id) % len(types)
				got, _ := s.TryResolveType(types[idx], apis.Config{})
				if got != want[idx] {
					errCh <- got
					return
				}
				if i%500 == 0 {
					_ = reg.Register(reflect.TypeFor[G[int]](), "domain.G")
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)
	for e := range errCh {
		t.Fatalf("concurrent mismatch: got=%q", e)
	}
}
