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


// Package session keeps per-session conversational memory: turn history,
// last results, accumulated preferences, and follow-up state.
//
// Memory is single-process and best-effort. Contexts are created lazily,
// reset in place after 30 minutes of inactivity (checked on access, no
// background task required), and mutated only through RecordTurn. The Store
// serializes access per session; requests for different sessions never block
// each other.
package session
