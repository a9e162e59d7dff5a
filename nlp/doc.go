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


// Package nlp provides rule-based text normalization for user queries.
//
// The pipeline is deliberately simple: tokenization, stop-word removal, a
// fixed-table suffix stemmer, and gazetteer-based location detection. There
// is no part-of-speech tagging and no embedding model; everything is a pure
// function of its input and the fixed tables in this package.
package nlp
