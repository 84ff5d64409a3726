package profile

import (
	"strings"

	"github.com/google/uuid"
)

// IDForName derives a storage-safe profile ID from a human profile name.
// Spaces and characters illegal on Unix or FAT filesystems map to an
// underscore. When sanitization leaves nothing usable a random UUID is
// returned instead so the ID is never empty.
func IDForName(name string) string {
	if id := sanitizeFilename(name); id != "" {
		return id
	}
	return uuid.NewString()
}

// NameFromFilename recovers a profile name from a stored filename.
// Tolerates a bare ".json" suffix for documents imported from elsewhere.
func NameFromFilename(filename string) string {
	if i := strings.Index(filename, Ext); i != -1 {
		return filename[:i]
	}
	if i := strings.Index(filename, ".json"); i != -1 {
		return filename[:i]
	}
	return filename
}

const fatIllegalChars = `<>:"/\|?*`

// sanitizeFilename maps name onto a safe filename, or returns the empty
// string when nothing of substance remains.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == ' ', r == 0, r < 0x20, strings.ContainsRune(fatIllegalChars, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if strings.Trim(s, "_.") == "" {
		// only separators and dots left; includes the reserved "." and ".."
		return ""
	}
	return s
}
