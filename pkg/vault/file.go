// Package vault orchestrates key derivation and address encoding: it
// resolves "address N for account M on chain C" questions against root
// nodes supplied by an external key store.
package vault

import (
	"fmt"

	"github.com/google/uuid"
)

// FileType tags the kind of record a vault file holds. The numeric
// values are part of the wire format.
type FileType int32

const (
	FileUnknown FileType = 0
	FileWallet  FileType = 1
	FilePK      FileType = 2
	FileSeed    FileType = 3
	FileBook    FileType = 4
)

var fileTypeNames = map[FileType]string{
	FileUnknown: "unknown",
	FileWallet:  "wallet",
	FilePK:      "pk",
	FileSeed:    "seed",
	FileBook:    "book",
}

func (t FileType) String() string {
	if name, ok := fileTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("file-type(%d)", int32(t))
}

// IsValid reports whether t is one of the known file types.
func (t FileType) IsValid() bool {
	_, ok := fileTypeNames[t]
	return ok
}

// FileTypeFromWire maps a raw wire integer to a FileType. Unknown
// values decode to FileUnknown.
func FileTypeFromWire(v int32) FileType {
	t := FileType(v)
	if !t.IsValid() {
		return FileUnknown
	}
	return t
}

// File identifies one record held by the external vault storage. The
// vault core never reads or writes the record itself, it only passes
// the reference to the key store.
type File struct {
	Type FileType
	ID   uuid.UUID
}

func (f File) String() string {
	return fmt.Sprintf("%s/%s", f.Type, f.ID)
}
