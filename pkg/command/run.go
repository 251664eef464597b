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

package command

import (
	"context"
	"strconv"
	"strings"

	"github.com/canlab/go-canmon/pkg/cache"
	"github.com/canlab/go-canmon/pkg/config"
	"github.com/canlab/go-canmon/pkg/device"
	"github.com/canlab/go-canmon/pkg/device/bridge"
	"github.com/canlab/go-canmon/pkg/device/loop"
	"github.com/canlab/go-canmon/pkg/log"
	"github.com/canlab/go-canmon/pkg/monitor"
	"github.com/canlab/go-canmon/pkg/script"
)

func parseIDList(tokens []string) []uint32 {
	var ids []uint32
	for _, token := range tokens {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(token), "0x"), 16, 32)
		if err != nil {
			log.Warning("Ignoring malformed identifier in classification table: %q", token)
			continue
		}
		ids = append(ids, uint32(v))
	}
	return ids
}

func loadScript(cfg *config.Config) *script.Store {
	if cfg.Script == "" {
		return script.Default()
	}
	library, err := script.OpenLibrary(cfg.ScriptDBPath())
	if err != nil {
		log.Warning("Script library unavailable (%s), using built-in script", err)
		return script.Default()
	}
	defer library.Close()
	store, err := library.Get(cfg.Script)
	if err != nil {
		log.Warning("Script %q not loaded (%s), using built-in script", cfg.Script, err)
		return script.Default()
	}
	return store
}

// StartMonitor wires the transceiver, console, cache and API together and
// runs the control loop until interrupted.
func StartMonitor(ctx context.Context, cfg *config.Config, loopback bool) error {
	frameCache := cache.New(
		cfg.Cache.Capacity,
		parseIDList(cfg.Cache.AlwaysShow),
		parseIDList(cfg.Cache.AlwaysSuppress),
	)
	store := loadScript(cfg)
	log.Info("Replay script: %s (%d entries)", store.Name(), store.Len())

	var dev device.Transceiver
	if loopback {
		log.Info("Using loopback transceiver")
		dev = loop.New()
	} else {
		b, err := bridge.New(ctx, cfg.Bridge.Listen, cfg.Bridge.Peer)
		if err != nil {
			return err
		}
		if err := b.Start(); err != nil {
			return err
		}
		defer b.Close()
		dev = b
	}

	console, err := monitor.NewTCPConsole(cfg.Console.Address)
	if err != nil {
		return err
	}
	defer console.Close()
	console.Start()

	mon := monitor.New(ctx, frameCache, store, dev, console)

	api := monitor.NewApiServer(ctx, cfg, mon)
	go func() {
		if err := api.Run(); err != nil {
			log.Error("API server stopped: %s", err)
		}
	}()

	log.Info("Monitor running: console %s api %s", cfg.Console.Address, cfg.Api.Address)
	return mon.Run()
}
