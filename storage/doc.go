// Copyright 2025 LocaTour
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage defines the capability interfaces the search pipeline
// consumes (record store, index, chat log) and the binary serialization for
// persisted chat entries.
//
// The index is a plain capability set; any implementation that answers the
// five lookup methods satisfies the contract. Its presence is an
// optimization: the pipeline falls back to a full scan when the index
// returns nothing.
package storage
