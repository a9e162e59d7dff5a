package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/locatour/tourguide/core"
)

// Key prefixes for different data types
const (
	chatEntryPrefix        = "chaent"
	chatEntrySessionPrefix = "chaents"
	chatEntryDatePrefix    = "chaentd"
)

// makeChatEntryKey generates a key for a chat entry by ID.
func makeChatEntryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chatEntryPrefix, id))
}

// makeChatSessionKey generates a composite key for the session index.
// Format: prefix:sessionID:timestamp:id. Timestamp and ID are BigEndian so
// a forward iteration over one session yields entries oldest first.
func makeChatSessionKey(sessionID string, timestamp time.Time, id core.ID) []byte {
	prefix := chatEntrySessionPrefix + ":" + sessionID + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeChatSessionPrefix generates the iteration prefix for one session.
func makeChatSessionPrefix(sessionID string) []byte {
	return []byte(chatEntrySessionPrefix + ":" + sessionID + ":")
}

// makeChatDateKey generates a composite key for the global date index.
// Format: prefix:timestamp:id
func makeChatDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := chatEntryDatePrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChatDateKey generates a partial key for date range seeks.
func makePartialChatDateKey(timestamp time.Time) []byte {
	prefix := chatEntryDatePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
