package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locatour/tourguide/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalChatEntry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name  string
		entry *core.ChatEntry
	}{
		{
			name: "minimal entry",
			entry: &core.ChatEntry{
				Id:          core.ID(1),
				SessionID:   "session-1",
				UserMessage: "Hello",
				Timestamp:   now,
				InsertedAt:  now,
			},
		},
		{
			name: "entry with matched records",
			entry: &core.ChatEntry{
				Id:          core.ID(2),
				SessionID:   "session-1",
				UserMessage: "beaches in Pagudpud",
				BotResponse: "I found Saud Beach in Pagudpud.",
				MatchedIDs:  []string{"TS01", "TS02"},
				Timestamp:   now,
				InsertedAt:  now,
			},
		},
		{
			name: "empty bot response",
			entry: &core.ChatEntry{
				Id:          core.ID(3),
				SessionID:   "session-2",
				UserMessage: "anything good around here?",
				Timestamp:   now,
				InsertedAt:  now,
			},
		},
		{
			name: "unicode message",
			entry: &core.ChatEntry{
				Id:          core.ID(4),
				SessionID:   "session-3",
				UserMessage: "kumusta! saan ang Mañosa café? 🏖️",
				BotResponse: "Paalam!",
				Timestamp:   now,
				InsertedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalChatEntry(tt.entry)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalChatEntry(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			// Verify fields
			assert.Equal(t, tt.entry.Id, decoded.Id)
			assert.Equal(t, tt.entry.SessionID, decoded.SessionID)
			assert.Equal(t, tt.entry.UserMessage, decoded.UserMessage)
			assert.Equal(t, tt.entry.BotResponse, decoded.BotResponse)
			assert.True(t, tt.entry.Timestamp.Equal(decoded.Timestamp))
			assert.True(t, tt.entry.InsertedAt.Equal(decoded.InsertedAt))
			// Handle nil vs empty slice
			if len(tt.entry.MatchedIDs) == 0 {
				assert.Empty(t, decoded.MatchedIDs)
			} else {
				assert.Equal(t, tt.entry.MatchedIDs, decoded.MatchedIDs)
			}
		})
	}
}

func TestMarshalChatEntryNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("PHT", 8*60*60)
	local := time.Date(2025, 6, 1, 20, 0, 0, 0, loc)

	entry := &core.ChatEntry{
		Id:          core.ID(7),
		SessionID:   "session-1",
		UserMessage: "hello",
		Timestamp:   local,
		InsertedAt:  local,
	}

	decoded, err := UnmarshalChatEntry(MarshalChatEntry(entry))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, decoded.Timestamp.Location())
	assert.True(t, local.Equal(decoded.Timestamp))
}

func TestUnmarshalChatEntry_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalChatEntry(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestUnmarshalChatEntry_Truncated(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	entry := &core.ChatEntry{
		Id:          core.ID(9),
		SessionID:   "session-1",
		UserMessage: "beaches in Pagudpud",
		BotResponse: "I found Saud Beach.",
		MatchedIDs:  []string{"TS01"},
		Timestamp:   now,
		InsertedAt:  now,
	}

	data := MarshalChatEntry(entry)
	for cut := 1; cut < len(data); cut++ {
		_, err := UnmarshalChatEntry(data[:cut])
		assert.Error(t, err, "cut at %d bytes should not decode", cut)
	}
}
