// Command mkcatalog writes a marker catalog as WGS84 GeoJSON.
//
// Without -in it writes the built-in country list. With -in it validates a
// catalog and rewrites it normalized, which also converts Web Mercator
// input to longitude/latitude.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"lightglobe/globe/catalog"
	"lightglobe/globe/geo"
	"lightglobe/globe/markers"
)

const defaultOut = "markers.geojson"

func main() {
	if err := run(afero.NewOsFs(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "mkcatalog:", err)
		os.Exit(1)
	}
}

func run(fsys afero.Fs, args []string, stdout io.Writer) error {
	fl := flag.NewFlagSet("mkcatalog", flag.ContinueOnError)
	fl.SetOutput(stdout)
	in := fl.String("in", "", "Catalog to normalize instead of the built-in list.")
	out := fl.String("out", defaultOut, `Output path, or "-" for stdout.`)
	force := fl.Bool("force", false, "Overwrite an existing output file.")
	if err := fl.Parse(args); err != nil {
		return err
	}

	ms := catalog.Builtin()
	if *in != "" {
		loaded, err := catalog.LoadFile(fsys, *in)
		if err != nil {
			return err
		}
		ms = loaded
	}
	if err := validate(ms); err != nil {
		return err
	}

	if *out == "-" {
		return catalog.Write(stdout, ms)
	}
	if !*force {
		if ok, err := afero.Exists(fsys, *out); err != nil {
			return err
		} else if ok {
			return fmt.Errorf("%s exists (use -force to overwrite)", *out)
		}
	}
	f, err := fsys.OpenFile(*out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %q: %w", *out, err)
	}
	if err := catalog.Write(f, ms); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %q: %w", *out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", *out, err)
	}
	fmt.Fprintf(stdout, "wrote %d markers to %s\n", len(ms), *out)
	return nil
}

// validate applies the registry's creation checks up front.
func validate(ms []markers.Marker) error {
	seen := make(map[string]bool, len(ms))
	var errs []error
	for _, m := range ms {
		if seen[m.ID] {
			errs = append(errs, fmt.Errorf("marker %q: %w", m.ID, markers.ErrDuplicateID))
		}
		seen[m.ID] = true
		if err := geo.Validate(m.Lat, m.Lon); err != nil {
			errs = append(errs, fmt.Errorf("marker %q: %w", m.ID, err))
		}
	}
	return errors.Join(errs...)
}
