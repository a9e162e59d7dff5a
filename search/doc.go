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


// Package search implements the contextual query pipeline.
//
// The Searcher type runs a multi-stage algorithm per call:
//   - query normalization and follow-up / alternatives classification
//   - candidate resolution via index lookup with full-scan fallback
//   - keyword- and location-aware relevance scoring
//   - session-scoped filtering of previously shown items
//
// Results are ranked by score and recorded into the session context so that
// the next turn can build on them.
package search
