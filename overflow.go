// Copyright 2026 The xnd Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ndt

import "math"

// Overflow discipline: all size and stride arithmetic is checked on
// 64-bit signed integers; overflow must surface as ValueError, never
// wrap silently (spec design notes, overflow.h's ADDi64/MULi64/DIVi64).

func addOverflow(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, true
	}
	return r, false
}

func mulOverflow(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	r := a * b
	if r/b != a {
		return 0, true
	}
	if a == math.MinInt64 || b == math.MinInt64 {
		return 0, true
	}
	return r, false
}

func absOverflow(a int64) (int64, bool) {
	if a == math.MinInt64 {
		return 0, true
	}
	if a < 0 {
		return -a, false
	}
	return a, false
}

func divOverflow(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, true
	}
	if a == math.MinInt64 && b == -1 {
		return 0, true
	}
	return a / b, false
}

// roundUp rounds offset up to the next multiple of align (a power of
// two), reporting overflow.
func roundUp(offset int64, align uint16) (int64, bool) {
	sum, overflow := addOverflow(offset, int64(align)-1)
	if overflow {
		return 0, true
	}
	return (sum / int64(align)) * int64(align), false
}

func maxU16(a, b uint16) uint16 {
	if a >= b {
		return a
	}
	return b
}

func maxI64(a, b int64) int64 {
	if a >= b {
		return a
	}
	return b
}
