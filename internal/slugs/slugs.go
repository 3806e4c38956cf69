// Package slugs derives stable identifiers from organ names. Catalog keys
// and the file names written by 'odfkit new' both come from here so that an
// organ created by the tool is listed under the name it was created with.
package slugs

import (
	"strconv"
	"strings"

	goslug "github.com/gosimple/slug"
)

// Extension is the file extension of organ definition files.
const Extension = ".organ"

// fallback is used when a name has no sluggable characters.
const fallback = "organ"

// OrganSlug converts a church or organ name to a lowercase dash-separated key.
//
// A trailing ".organ" is ignored, so slugging a file name and slugging the
// name it was created from agree.
func OrganSlug(name string) string {
	name = strings.TrimSpace(name)
	if len(name) >= len(Extension) && strings.EqualFold(name[len(name)-len(Extension):], Extension) {
		name = name[:len(name)-len(Extension)]
	}
	slugged := goslug.Make(name)
	if slugged == "" {
		return fallback
	}
	return slugged
}

// FileName returns the organ definition file name for name.
func FileName(name string) string {
	return OrganSlug(name) + Extension
}

// Unique returns base, or base-2, base-3, ... for the first candidate that
// taken rejects.
func Unique(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}
