/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

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
package cmd

import (
	"github.com/cyz14/s2cells/common"
	"github.com/cyz14/s2cells/daemon/webd"
	"github.com/cyz14/s2cells/params"
	"github.com/cyz14/s2cells/s2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"log/slog"
)

// webdCmd represents the serve command
var webdCmd = &cobra.Command{
	Use:   "webd",
	Short: "Start the webserver",
	Long: `Serves level datasets at /examples/data/s2level{N}_cells.json
and runs a viewer against them, pushing every redraw to websocket
clients at /ws. Clients select levels with {"action":"select","level":N}.`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		config := params.DefaultWebDaemonConfig()
		config.Network = viper.GetString("webd.network")
		config.Address = viper.GetString("webd.address")
		config.DataDir = viper.GetString("webd.datadir")
		config.Viewer.DataSourceBase = viper.GetString("webd.source")
		config.Viewer.InitialLevel = s2.CellLevel(viper.GetInt("webd.level"))
		config.Viewer.PolygonsEnabled = viper.GetBool("webd.polygons")

		d, err := webd.NewWebDaemon(config)
		if err != nil {
			log.Fatalln(err)
		}
		if err := d.Start(); err != nil {
			log.Fatalln(err)
		}

		sig := <-common.Interrupted()
		slog.Warn("Received signal", "signal", sig)
		if err := d.Stop(); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(webdCmd)

	defaults := params.DefaultWebDaemonConfig()

	pFlags := webdCmd.PersistentFlags()
	pFlags.String("network", defaults.Network, "Listener network (tcp, unix)")
	pFlags.String("address", defaults.Address, "HTTP address to listen on")
	pFlags.String("datadir", defaults.DataDir, "Directory searched for s2level{N}_cells.json files")
	pFlags.String("source", "", "Data source base URL for the viewer (default: this server)")
	pFlags.Int("level", int(defaults.Viewer.InitialLevel), "Initial cell level")
	pFlags.Bool("polygons", defaults.Viewer.PolygonsEnabled, "Enable the polygons layer at start")
	bindFlags("webd.", pFlags, "network", "address", "datadir", "source", "level", "polygons")
}
