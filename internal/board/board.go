// This file is part of arduino-reset-cli.
//
// Copyright 2025 ARDUINO SA (http://www.arduino.cc/)
//
// This software is released under the GNU General Public License version 3,
// which covers the main part of arduino-reset-cli.
// The terms of this license can be found at:
// https://www.gnu.org/licenses/gpl-3.0.en.html
//
// You can be released from the requirements of the above licenses by purchasing
// a commercial license. Buying such a license is mandatory if you want to
// modify or otherwise use the software for commercial activities involving the
// Arduino software without disclosing the source code of your own applications.
// To purchase a commercial license, send an email to license@arduino.cc.

package board

import (
	"fmt"
	"strconv"

	"github.com/arduino/go-paths-helper"
	properties "github.com/arduino/go-properties-orderedmap"
	"github.com/goccy/go-yaml"
)

// Config is the description of the target hardware, addressed with dotted keys
// such as "build.mcu".
type Config struct {
	props *properties.Map
}

func New() *Config {
	return &Config{props: properties.NewMap()}
}

// Load reads a board manifest. Both JSON and YAML manifests are accepted.
func Load(file *paths.Path) (*Config, error) {
	data, err := file.ReadFile()
	if err != nil {
		return nil, fmt.Errorf("cannot read board manifest: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var manifest map[string]any
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("cannot decode board manifest: %w", err)
	}

	c := New()
	flatten(c.props, "", manifest)
	return c, nil
}

func flatten(props *properties.Map, prefix string, value any) {
	join := func(key string) string {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}

	switch v := value.(type) {
	case map[string]any:
		for key, inner := range v {
			flatten(props, join(key), inner)
		}
	case []any:
		for i, inner := range v {
			flatten(props, join(strconv.Itoa(i)), inner)
		}
	case nil:
	default:
		if prefix != "" {
			props.Set(prefix, fmt.Sprint(v))
		}
	}
}

func (c *Config) Get(key string) (string, bool) {
	return c.props.GetOk(key)
}

// GetOr returns the value of key, or def when the board does not define it.
func (c *Config) GetOr(key, def string) string {
	if v, ok := c.props.GetOk(key); ok {
		return v
	}
	return def
}

func (c *Config) Set(key, value string) {
	c.props.Set(key, value)
}

func (c *Config) Keys() []string {
	return c.props.Keys()
}
