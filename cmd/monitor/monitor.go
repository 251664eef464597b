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

package monitor

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/canlab/go-canmon/pkg/command"
	"github.com/canlab/go-canmon/pkg/config"
)

const (
	ConsoleOptionName  = "console"
	BridgeOptionName   = "bridge"
	ScriptOptionName   = "script"
	LoopbackOptionName = "loopback"
)

func NewCommand() *cobra.Command {
	var console, peer, scriptName string
	var loopback bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Start the bus monitor control loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if console != "" {
				cfg.Console.Address = console
			}
			if peer != "" {
				cfg.Bridge.Peer = peer
			}
			if scriptName != "" {
				cfg.Script = scriptName
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return command.StartMonitor(ctx, cfg, loopback)
		},
	}
	cmd.Flags().StringVar(&console, ConsoleOptionName, "", "Console address to bind. E.g. 0.0.0.0:2323")
	cmd.Flags().StringVar(&peer, BridgeOptionName, "", "CAN-Ethernet gateway address. E.g. 192.168.4.101:20001")
	cmd.Flags().StringVar(&scriptName, ScriptOptionName, "", "Replay script name from the script library")
	cmd.Flags().BoolVar(&loopback, LoopbackOptionName, false, "Use the in-memory loopback transceiver instead of a gateway")

	return cmd
}
