/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type ConsoleConfig struct {
	Address string `yaml:"address,omitempty"`
}

type ApiConfig struct {
	Address string `yaml:"address,omitempty"`
}

type BridgeConfig struct {
	Listen string `yaml:"listen,omitempty"`
	Peer   string `yaml:"peer,omitempty"`
}

type CacheConfig struct {
	Capacity       int      `yaml:"capacity,omitempty"`
	AlwaysShow     []string `yaml:"always_show,omitempty"`
	AlwaysSuppress []string `yaml:"always_suppress,omitempty"`
}

type Config struct {
	LogLevel string         `yaml:"log_level,omitempty"`
	Script   string         `yaml:"script,omitempty"`
	Console  *ConsoleConfig `yaml:"console,omitempty"`
	Api      *ApiConfig     `yaml:"api,omitempty"`
	Bridge   *BridgeConfig  `yaml:"bridge,omitempty"`
	Cache    *CacheConfig   `yaml:"cache,omitempty"`
	filepath string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = ioutil.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

// Load reads the config file if it exists. A missing file is not an error,
// the defaults stay in place.
func (c *Config) Load() error {
	data, err := ioutil.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return home
}

func DefaultConfigPath() string {
	return filepath.Join(homeDir(), ConfigDir, ConfigFile)
}

// ScriptDBPath is the location of the bbolt script library.
func (c *Config) ScriptDBPath() string {
	return filepath.Join(homeDir(), ConfigDir, ScriptDB)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Console: &ConsoleConfig{
			Address: DefaultConsoleAddress,
		},
		Api: &ApiConfig{
			Address: DefaultApiAddress,
		},
		Bridge: &BridgeConfig{
			Listen: DefaultBridgeListen,
			Peer:   DefaultBridgePeer,
		},
		Cache: &CacheConfig{
			Capacity:       DefaultCacheCapacity,
			AlwaysShow:     DefaultAlwaysShow,
			AlwaysSuppress: DefaultAlwaysSuppress,
		},
		filepath: DefaultConfigPath(),
	}
}
