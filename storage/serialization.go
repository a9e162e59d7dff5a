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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/locatour/tourguide/core"
)

// Timestamps are persisted as UTC microseconds since the Unix epoch.

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalChatEntry serializes a ChatEntry to bytes.
func MarshalChatEntry(entry *core.ChatEntry) []byte {
	buf := make([]byte, sizeChatEntry(entry))
	n := varint.Uint64.Marshal(uint64(entry.Id), buf)
	n += ord.String.Marshal(entry.SessionID, buf[n:])
	n += ord.String.Marshal(entry.UserMessage, buf[n:])
	n += ord.String.Marshal(entry.BotResponse, buf[n:])
	n += varint.Int.Marshal(len(entry.MatchedIDs), buf[n:])
	for _, id := range entry.MatchedIDs {
		n += ord.String.Marshal(id, buf[n:])
	}
	n += varint.Int64.Marshal(entry.Timestamp.UTC().UnixMicro(), buf[n:])
	varint.Int64.Marshal(entry.InsertedAt.UTC().UnixMicro(), buf[n:])
	return buf
}

// UnmarshalChatEntry deserializes a ChatEntry from bytes.
func UnmarshalChatEntry(data []byte) (*core.ChatEntry, error) {
	entry := &core.ChatEntry{}

	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	entry.Id = core.ID(id)

	var m int
	if entry.SessionID, m, err = ord.String.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: session id: %w", ErrSerializationFailed, err)
	}
	n += m

	if entry.UserMessage, m, err = ord.String.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: user message: %w", ErrSerializationFailed, err)
	}
	n += m

	if entry.BotResponse, m, err = ord.String.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: bot response: %w", ErrSerializationFailed, err)
	}
	n += m

	count, m, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: matched ids length: %w", ErrSerializationFailed, err)
	}
	n += m
	if count < 0 || count > len(data) {
		return nil, fmt.Errorf("%w: matched ids length %d", ErrTruncatedData, count)
	}
	if count > 0 {
		entry.MatchedIDs = make([]string, count)
		for i := 0; i < count; i++ {
			if entry.MatchedIDs[i], m, err = ord.String.Unmarshal(data[n:]); err != nil {
				return nil, fmt.Errorf("%w: matched id %d: %w", ErrSerializationFailed, i, err)
			}
			n += m
		}
	}

	ts, m, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp: %w", ErrSerializationFailed, err)
	}
	n += m
	entry.Timestamp = time.UnixMicro(ts).UTC()

	inserted, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: inserted at: %w", ErrSerializationFailed, err)
	}
	entry.InsertedAt = time.UnixMicro(inserted).UTC()

	return entry, nil
}

func sizeChatEntry(entry *core.ChatEntry) int {
	size := varint.Uint64.Size(uint64(entry.Id))
	size += ord.String.Size(entry.SessionID)
	size += ord.String.Size(entry.UserMessage)
	size += ord.String.Size(entry.BotResponse)
	size += varint.Int.Size(len(entry.MatchedIDs))
	for _, id := range entry.MatchedIDs {
		size += ord.String.Size(id)
	}
	size += varint.Int64.Size(entry.Timestamp.UTC().UnixMicro())
	size += varint.Int64.Size(entry.InsertedAt.UTC().UnixMicro())
	return size
}
