package odf

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"github.com/aidanlsb/odfkit/internal/atomicfile"
	"github.com/aidanlsb/odfkit/internal/ini"
	"github.com/aidanlsb/odfkit/internal/organ"
	"github.com/aidanlsb/odfkit/internal/paths"
)

// SaveOptions configures Encode and Save.
type SaveOptions struct {
	// BOM prefixes the output with a UTF-8 byte order mark.
	BOM bool
	// Backup keeps the previous file as <path>.bak.
	Backup bool
	// Paths converts absolute paths back to organ-relative references.
	// Save defaults it to the directory of the destination file.
	Paths organ.PathResolver
	// Separator is used in references when Save builds the resolver.
	Separator string
}

// Encode renders o in the modern dialect.
func Encode(o *organ.Organ, opts SaveOptions) ([]byte, error) {
	w := ini.NewWriter()
	o.Write(w, &organ.Context{Organ: o, Paths: opts.Paths})
	data, err := ini.Encode(w.String(), opts.BOM)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("encode organ"), ftag.With(ftag.Internal))
	}
	return data, nil
}

// Save writes o to path atomically.
func Save(o *organ.Organ, path string, opts SaveOptions) error {
	if opts.Paths == nil {
		root := paths.ForFile(path)
		root.Separator = opts.Separator
		opts.Paths = root
	}
	data, err := Encode(o, opts)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFileWith(path, data, atomicfile.Options{Backup: opts.Backup}); err != nil {
		return fault.Wrap(err,
			fmsg.WithDesc("save organ", "Could not write "+path),
			ftag.With(ftag.Internal))
	}
	return nil
}
