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

import (
	"fmt"
	"time"
)

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - Id, Name, Type and Location must not be empty
//
// NOT validated (any of these may legitimately be absent):
//   - DescriptionKeywords, FullDescription, BestTimeToVisit,
//     RelatedItems, NearestHub
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyRecordID)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyRecordName)
	}

	if record.Type == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyRecordType)
	}

	if record.Location == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyRecordLocation)
	}

	return nil
}

// ValidateChatEntry validates a ChatEntry according to domain rules.
//
// Validation rules:
//   - SessionID must not be empty
//   - UserMessage must not be empty
//   - Timestamp must not be in the future
//
// NOT validated:
//   - BotResponse (empty replies are persisted as-is)
//   - MatchedIDs (empty when a turn produced no results)
//   - ID (0 is valid until the content-based ID is assigned)
func ValidateChatEntry(entry *ChatEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidChatEntry)
	}

	if entry.SessionID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChatEntry, ErrEmptySessionID)
	}

	if entry.UserMessage == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChatEntry, ErrEmptyMessage)
	}

	if !IsValidTimestamp(entry.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidChatEntry, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp reports whether a timestamp is not in the future.
// A small tolerance absorbs clock skew between writers.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now().Add(5 * time.Second))
}
