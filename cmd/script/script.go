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

// Package script manages the replay script library. Scripts are authored
// offline, one frame literal per line, and loaded by the monitor at startup.
package script

import (
	"github.com/spf13/cobra"

	"github.com/canlab/go-canmon/pkg/config"
	pkgscript "github.com/canlab/go-canmon/pkg/script"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Manage the replay script library",
	}
	cmd.AddCommand(NewAddCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewRemoveCommand())
	return cmd
}

func openLibrary() (*pkgscript.Library, error) {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	return pkgscript.OpenLibrary(cfg.ScriptDBPath())
}
