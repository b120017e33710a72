/*
   Copyright 2025 The DIRPX Authors

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

package mapper

import (
	"dirpx.dev/errkit/code"
	"google.golang.org/grpc/codes"
)

// freeze makes an immutable copy of a per-code table so later mutations to
// the builder cannot affect the mapper. Empty tables become nil.
func freeze[V any](src map[code.Code]V) map[code.Code]V {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[code.Code]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// freezeGRPC is freeze for builder tables that keep gRPC codes as ints.
func freezeGRPC(src map[code.Code]int) map[code.Code]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[code.Code]codes.Code, len(src))
	for k, v := range src {
		dst[k] = codesOf(v)
	}
	return dst
}

func codesOf(v int) codes.Code {
	if v < 0 {
		return codes.Unknown
	}
	return codes.Code(uint32(v))
}
