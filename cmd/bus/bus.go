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

// Package bus talks to a running monitor through its HTTP API.
package bus

import (
	"github.com/spf13/cobra"

	"github.com/canlab/go-canmon/pkg/command"
	"github.com/canlab/go-canmon/pkg/config"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bus",
		Short: "Interact with a running monitor",
	}
	cmd.AddCommand(NewSendCommand())
	cmd.AddCommand(NewStatsCommand())
	cmd.AddCommand(NewDumpCommand())
	cmd.AddCommand(NewClearCommand())
	return cmd
}

func newApiClient() *command.ApiClient {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	return command.NewApiClient(cfg)
}
