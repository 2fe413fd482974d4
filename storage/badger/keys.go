package badger

import (
	"encoding/binary"

	"github.com/poiesic/coursematch/core"
)

// Key prefixes for different data types
const (
	courseRecordPrefix = "crsrec:"
	checkpointPrefix   = "chkpt:"
)

// makeCourseKey generates a key for an indexed course.
// Format: prefix + big-endian BLAKE2b id of the catalog id
func makeCourseKey(courseID string) []byte {
	prefixBytes := []byte(courseRecordPrefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(courseID)))
	return buf
}

// makeCheckpointKey generates a key for catalog source checkpoints.
func makeCheckpointKey(source string) []byte {
	return []byte(checkpointPrefix + source)
}
