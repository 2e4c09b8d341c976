package executor

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// archiveStamp is the timestamp suffix layout for archive filenames.
const archiveStamp = "2006-01-02-150405"

// ArchiveName derives an archive filename from the target's name and the run
// timestamp, inserting the stamp before the extension:
//
//	example.txt    -> example-2017-03-23-121700.txt
//
// When ext is given it is matched as a literal trailing substring instead of
// splitting on the last dot, so "example.tar.gz" with ext ".tar.gz" becomes
// "example-2017-03-23-121700.tar.gz" rather than
// "example.tar-2017-03-23-121700.gz".
func ArchiveName(targetName, ext string, now int64) (string, error) {
	var base string
	if ext == "" {
		ext = filepath.Ext(targetName)
		base = strings.TrimSuffix(targetName, ext)
	} else {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !strings.HasSuffix(targetName, ext) {
			return "", fmt.Errorf("target %q does not end with extension %q", targetName, ext)
		}
		base = strings.TrimSuffix(targetName, ext)
	}

	stamp := time.Unix(now, 0).Format(archiveStamp)
	return base + "-" + stamp + ext, nil
}
