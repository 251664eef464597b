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

const (
	ConfigDir  = ".go-canmon"
	ConfigFile = "config"
	ScriptDB   = "scripts.db"

	DefaultLogLevel       = "info"
	DefaultConsoleAddress = "0.0.0.0:2323"
	DefaultApiAddress     = "0.0.0.0:8040"
	DefaultBridgeListen   = "0.0.0.0:20001"
	DefaultBridgePeer     = "192.168.4.101:20001"
	DefaultCacheCapacity  = 128
)

// Default classification tables. Identifiers listed in AlwaysShow are
// displayed on every sighting, identifiers in AlwaysSuppress never are.
// Everything else is cacheable. Hex strings so the config file reads the
// same way the bus traces do.
var (
	DefaultAlwaysShow     = []string{"0x7df", "0x7e8"}
	DefaultAlwaysSuppress = []string{"0x130", "0x1a0"}
)
