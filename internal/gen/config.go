/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package gen

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/viper"
)

// DefaultOutput is the generated file name.
const DefaultOutput = "tix_gen.go"

// Config selects what the generator emits for a package.
type Config struct {
	// Output is the generated file name, relative to the package directory.
	Output string `mapstructure:"output"`
	// Include and Exclude are path.Match patterns over type names. An
	// empty Include selects every type.
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
	// Models emits a model registration per struct.
	Models bool `mapstructure:"models"`
	// Methods adds exported methods to the emitted models.
	Methods bool `mapstructure:"methods"`
	// Enums emits an enum registration per integer type with constants.
	Enums bool `mapstructure:"enums"`
	// TrimEnumPrefix drops the type name from constant names, so
	// StatusActive is registered as "Active".
	TrimEnumPrefix bool `mapstructure:"trim_enum_prefix"`
}

// SetDefaults installs the default configuration on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})
	v.SetDefault("models", true)
	v.SetDefault("methods", true)
	v.SetDefault("enums", true)
	v.SetDefault("trim_enum_prefix", false)
}

// Load reads tixgen.yaml from dir when present, then TIXGEN_* environment
// variables and any flags already bound to v.
func Load(v *viper.Viper, dir string) (Config, error) {
	SetDefaults(v)
	v.SetConfigName("tixgen")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("TIXGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("tix(gen): read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("tix(gen): decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the output name and patterns.
func (c Config) Validate() error {
	if c.Output == "" || path.Base(c.Output) != c.Output || !strings.HasSuffix(c.Output, ".go") {
		return fmt.Errorf("tix(gen): output must be a .go file name, got %q", c.Output)
	}
	for _, p := range append(append([]string(nil), c.Include...), c.Exclude...) {
		if _, err := path.Match(p, ""); err != nil {
			return fmt.Errorf("tix(gen): bad pattern %q: %w", p, err)
		}
	}
	return nil
}

// Wants reports whether the type called name is selected.
func (c Config) Wants(name string) bool {
	for _, p := range c.Exclude {
		if ok, _ := path.Match(p, name); ok {
			return false
		}
	}
	if len(c.Include) == 0 {
		return true
	}
	for _, p := range c.Include {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}
