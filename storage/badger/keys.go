package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/bordonalmed/REVELA-sub000/core"
)

// Key prefixes for different data types. Primary prefixes end with ':' so
// prefix iteration over records never picks up index keys.
const (
	projectRecordPrefix  = "projrec"
	projectNamePrefix    = "projrecn"
	projectDatePrefix    = "projrecd"
	projectCreatedPrefix = "projrecc"
	folderRecordPrefix   = "folrec"
	folderNamePrefix     = "folrecn"
)

// makeProjectKey generates a key for a project by ID.
func makeProjectKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", projectRecordPrefix, id))
}

// makeStringIndexKey generates a composite key for a string-valued index.
// Format: prefix:value:id, with the ID in BigEndian so keys with equal values
// sort by ID.
func makeStringIndexKey(prefix, value string, id core.ID) []byte {
	lead := prefix + ":" + value + ":"
	buf := make([]byte, len(lead)+8)
	offset := copy(buf, lead)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeProjectNameKey generates a composite key for the name index.
func makeProjectNameKey(name string, id core.ID) []byte {
	return makeStringIndexKey(projectNamePrefix, name, id)
}

// makeProjectDateKey generates a composite key for the user-date index.
func makeProjectDateKey(date string, id core.ID) []byte {
	return makeStringIndexKey(projectDatePrefix, date, id)
}

// makeProjectCreatedKey generates a composite key for the creation-time index.
// Format: prefix:timestamp:id
func makeProjectCreatedKey(createdAt time.Time, id core.ID) []byte {
	prefix := projectCreatedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialProjectCreatedKey generates a partial key for creation-time range
// queries. Format: prefix:timestamp
func makePartialProjectCreatedKey(createdAt time.Time) []byte {
	prefix := projectCreatedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	return buf
}

// makeFolderKey generates a key for a folder by ID.
func makeFolderKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", folderRecordPrefix, id))
}

// makeFolderNameKey generates a composite key for the folder name index.
func makeFolderNameKey(name string, id core.ID) []byte {
	return makeStringIndexKey(folderNamePrefix, name, id)
}
