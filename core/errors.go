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


package core

import "errors"

// Domain validation errors
var (
	// ErrEmptyQuery indicates a fully empty (or whitespace-only) query text.
	// This is the only input error surfaced to callers; all other input
	// problems are corrected by clamping.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEmptyRecordID indicates the record Id field is empty.
	ErrEmptyRecordID = errors.New("record id cannot be empty")

	// ErrEmptyRecordName indicates the record Name field is empty.
	ErrEmptyRecordName = errors.New("record name cannot be empty")

	// ErrEmptyRecordType indicates the record Type field is empty.
	ErrEmptyRecordType = errors.New("record type cannot be empty")

	// ErrEmptyRecordLocation indicates the record Location field is empty.
	ErrEmptyRecordLocation = errors.New("record location cannot be empty")

	// ErrInvalidChatEntry indicates a ChatEntry failed validation.
	ErrInvalidChatEntry = errors.New("invalid chat entry")

	// ErrEmptySessionID indicates the SessionID field is empty.
	ErrEmptySessionID = errors.New("session id cannot be empty")

	// ErrEmptyMessage indicates the UserMessage field is empty.
	ErrEmptyMessage = errors.New("user message cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
