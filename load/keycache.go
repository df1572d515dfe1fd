// Copyright 2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package load

import "github.com/alphadose/haxmap"

// KeyCache maps area business keys (m49 codes) to surrogate keys so
// single-row insert paths avoid a dimension lookup per measurement. Safe for
// concurrent use.
type KeyCache struct {
	areas *haxmap.Map[string, int64]
}

func NewKeyCache() *KeyCache {
	return &KeyCache{areas: haxmap.New[string, int64]()}
}

func (cache *KeyCache) Area(m49 string) (int64, bool) {
	return cache.areas.Get(m49)
}

func (cache *KeyCache) PutArea(m49 string, key int64) {
	cache.areas.Set(m49, key)
}

// Reset discards all cached keys. Called after a dimension reload since
// surrogate keys are regenerated.
func (cache *KeyCache) Reset() {
	cache.areas = haxmap.New[string, int64]()
}
