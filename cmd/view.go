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
	"bufio"
	"context"
	"github.com/cyz14/s2cells/common"
	"github.com/cyz14/s2cells/params"
	"github.com/cyz14/s2cells/render"
	"github.com/cyz14/s2cells/s2"
	"github.com/cyz14/s2cells/viewer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Run a headless viewer",
	Long: `Runs a viewer against a data source and logs every redraw.

Reads commands from stdin, one per line:
  3            select level 3
  +Polygons    enable a layer
  -Paths       disable a layer`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		config := params.DefaultViewerConfig()
		config.DataSourceBase = viper.GetString("view.source")
		config.InitialLevel = s2.CellLevel(viper.GetInt("view.level"))
		config.PolygonsEnabled = viper.GetBool("view.polygons")

		ctx, stop := common.InterruptContext(context.Background())
		defer stop()

		globe := render.NewGlobe()
		v := viewer.NewViewer(config, globe, nil)

		frames := make(chan render.Frame)
		sub := globe.SubscribeFrames(frames)
		defer sub.Unsubscribe()
		go func() {
			for {
				select {
				case f := <-frames:
					attrs := []any{"seq", f.Seq}
					for _, l := range f.Layers {
						attrs = append(attrs, strings.ToLower(l.Name), l.Count, strings.ToLower(l.Name)+".enabled", l.Enabled)
					}
					slog.Info("Redraw", attrs...)
				case <-sub.Err():
					return
				}
			}
		}()

		go readViewCommands(ctx, v)

		if err := v.Run(ctx); err != nil {
			log.Fatalln(err)
		}
	},
}

func readViewCommands(ctx context.Context, v *viewer.Viewer) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var err error
		switch line[0] {
		case '+', '-':
			err = v.SetLayerEnabled(ctx, line[1:], line[0] == '+')
		default:
			var n int
			n, err = strconv.Atoi(line)
			if err == nil {
				err = v.Select(ctx, s2.CellLevel(n))
			}
		}
		if err != nil {
			slog.Warn("Command failed", "command", line, "error", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)

	defaults := params.DefaultViewerConfig()

	pFlags := viewCmd.PersistentFlags()
	pFlags.String("source", defaults.DataSourceBase, "Data source base URL")
	pFlags.Int("level", int(defaults.InitialLevel), "Initial cell level")
	pFlags.Bool("polygons", defaults.PolygonsEnabled, "Enable the polygons layer at start")
	bindFlags("view.", pFlags, "source", "level", "polygons")
}
