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

package hash

import (
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf_EmptyIsBasis(t *testing.T) {
	assert.Equal(t, Basis, Of(""))
	assert.Equal(t, Basis, Bytes(nil))
}

func TestOf_MatchesFNV1a(t *testing.T) {
	inputs := []string{"a", "abc", "Point", "geo::Point", "hello world", "\x00\xff"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			ref := fnv.New64a()
			_, _ = ref.Write([]byte(in))
			assert.Equal(t, ref.Sum64(), Of(in))
			assert.Equal(t, Of(in), Bytes([]byte(in)))
		})
	}
}

func TestOf_Deterministic(t *testing.T) {
	assert.Equal(t, Of("x"), Of("x"))
	assert.NotEqual(t, Of("x"), Of("y"))
}

func TestContinue(t *testing.T) {
	assert.Equal(t, Of("geo::Point"), Continue(Of("geo::"), "Point"))
	assert.Equal(t, Of("abc"), Continue(Basis, "abc"))
}

func dispatch(cmd string) string {
	switch Of(cmd) {
	case Of("start"):
		return "starting"
	case Of("stop"):
		return "stopping"
	default:
		return "unknown"
	}
}

func TestOf_SwitchDispatch(t *testing.T) {
	assert.Equal(t, "starting", dispatch("start"))
	assert.Equal(t, "stopping", dispatch("stop"))
	assert.Equal(t, "unknown", dispatch("restart"))
}

func BenchmarkOf(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Of("dirpx.dev/tix/geo.Point")
	}
}
