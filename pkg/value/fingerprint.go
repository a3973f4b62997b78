// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package value

import (
	"encoding/binary"
	"io"
	"math"
)

// ModelHasher determines the structural hash of a model referred to from
// within a value.  This allows values containing models to be fingerprinted by
// structure, rather than by identity.
type ModelHasher func(ModelId) uint64

// Fingerprint writes a canonical encoding of a given value to a given writer
// (typically a hash function).  Two values which are equal produce the same
// encoding.  Integers are encoded as scalars so that, for example, 1 and 1.0
// have the same fingerprint.
func Fingerprint(w io.Writer, val Value, models ModelHasher) {
	switch v := val.(type) {
	case nil, None:
		writeTag(w, 'N')
	case Integer:
		writeTag(w, 'Q')
		writeUint(w, uint64(Scalar))
		writeFloat(w, float64(v))
	case Quantity:
		writeTag(w, 'Q')
		writeUint(w, uint64(v.Dim))
		writeFloat(w, v.Value)
	case String:
		writeTag(w, 'S')
		writeString(w, string(v))
	case Bool:
		writeTag(w, 'B')
		//
		if v {
			writeUint(w, 1)
		} else {
			writeUint(w, 0)
		}
	case Array:
		writeTag(w, 'A')
		writeUint(w, uint64(len(v.Items)))
		//
		for _, item := range v.Items {
			Fingerprint(w, item, models)
		}
	case Tuple:
		writeTag(w, 'T')
		writeUint(w, uint64(len(v.Items)))
		//
		for i, item := range v.Items {
			writeString(w, v.Names[i])
			Fingerprint(w, item, models)
		}
	case Matrix:
		writeTag(w, 'M')
		writeUint(w, uint64(v.Rows))
		writeUint(w, uint64(v.Cols))
		//
		for _, f := range v.Data {
			writeFloat(w, f)
		}
	case Model:
		writeTag(w, 'm')
		writeUint(w, models(v.Id))
	case Target:
		writeTag(w, 't')
		writeString(w, v.Name.String())
	case Return:
		Fingerprint(w, v.Inner, models)
	}
}

func writeTag(w io.Writer, tag byte) {
	_, _ = w.Write([]byte{tag})
}

func writeUint(w io.Writer, n uint64) {
	var buf [8]byte
	//
	binary.LittleEndian.PutUint64(buf[:], n)
	_, _ = w.Write(buf[:])
}

func writeFloat(w io.Writer, f float64) {
	writeUint(w, math.Float64bits(f))
}

func writeString(w io.Writer, s string) {
	writeUint(w, uint64(len(s)))
	_, _ = io.WriteString(w, s)
}
