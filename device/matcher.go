package device

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/vearne/pcapkit/errs"
)

// Find returns the first device whose description matches the glob pattern
// (wildcards `*` and `?`, character classes, case-sensitive). Matching is
// first-match-wins in directory order.
func (d *Directory) Find(pattern string) (Device, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return Device{}, fmt.Errorf("bad device pattern %q: %w", pattern, err)
	}
	devices, err := d.Devices()
	if err != nil {
		return Device{}, err
	}
	for _, dev := range devices {
		if g.Match(dev.Description) {
			return dev, nil
		}
	}
	return Device{}, &errs.NoMatchError{Pattern: pattern}
}

// Find enumerates devices and returns the first whose description matches
// the glob pattern. The enumeration scope is opened and released inside
// the call.
func Find(pattern string) (Device, error) {
	dir, err := Open()
	if err != nil {
		return Device{}, err
	}
	defer dir.Close()
	return dir.Find(pattern)
}

// List enumerates devices and returns a name to description mapping.
// Duplicate names should not occur; if they do, the later entry wins.
func List() (map[string]string, error) {
	dir, err := Open()
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	devices, err := dir.Devices()
	if err != nil {
		return nil, err
	}
	res := make(map[string]string, len(devices))
	for _, dev := range devices {
		res[dev.Name] = dev.Description
	}
	return res, nil
}
