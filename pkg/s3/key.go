package s3

import (
	"crypto/md5"
	"errors"
	"fmt"
	"strings"

	tzc "github.com/tilezen/hilbert/pkg/coord"
)

// specific logic around s3, eg understanding our tile paths and
// prefixes for different types of buckets

// ParseCoordFromKey parses a coordinate from an s3 path.
func ParseCoordFromKey(key string) (*tzc.Coord, error) {
	// sanity check to see if it's even possible
	if len(key) < 4 {
		return nil, errors.New("Too few characters")
	}
	// assume that we have an extension that we're trimming off
	extIdx := strings.LastIndexByte(key, '.')
	if extIdx < 0 {
		return nil, errors.New("Missing extension")
	}

	var slashCount uint
	var idx int
	for idx = extIdx - 1; idx >= 0; idx-- {
		if key[idx] == '/' {
			slashCount++
			if slashCount == 3 {
				break
			}
		}
	}
	if slashCount == 3 || (slashCount == 2 && idx == -1) {
		coordStr := key[idx+1 : extIdx]
		return tzc.Decode(coordStr)
	}
	return nil, errors.New("Missing fields")
}

// ParseURL splits an s3://bucket/key location. ok is false for anything
// that isn't an s3 URL with a non-empty bucket and key.
func ParseURL(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// ParsePrefixURL splits an s3://bucket/prefix/ location naming every key
// under a prefix. The location must end in a slash; s3://bucket/ is the
// whole bucket and yields an empty prefix.
func ParsePrefixURL(location string) (bucket, prefix string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found || !strings.HasSuffix(rest, "/") {
		return "", "", false
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", false
	}
	return bucket, prefix, true
}

// HashString returns the first 5 characters of the md5 hash.
// This is what gets used as s3 path prefixes.
func HashString(s string) string {
	md5Hash := md5.Sum([]byte(s))
	hex := fmt.Sprintf("%x", md5Hash)
	return hex[:5]
}

// TileHashPathForCoord returns the hashed s3 path for a tile archive.
func TileHashPathForCoord(datePrefix string, coord tzc.Coord) string {
	pathToHash := fmt.Sprintf("%d/%d/%d.zip", coord.Z, coord.X, coord.Y)
	hash := HashString(pathToHash)
	return fmt.Sprintf("%s/%s/%s", hash, datePrefix, pathToHash)
}
