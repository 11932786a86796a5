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
	"encoding/json"
	"github.com/cyz14/s2cells/flat"
	"github.com/cyz14/s2cells/params"
	"github.com/cyz14/s2cells/s2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"io"
	"log"
	"log/slog"
	"time"
)

var optGenOut string
var optGenLevels []int

// genCmd represents the gen command
var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate cell datasets",
	Long: `Writes one s2level{N}_cells.json per level: every cell at level N,
four [lat, lon] vertices each, in Hilbert curve order from face 0.`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		out := flat.NewFlatWithRoot(optGenOut)
		for _, l := range optGenLevels {
			level := s2.CellLevel(l)
			start := time.Now()
			ds, err := s2.LevelDataset(level)
			if err != nil {
				log.Fatalln(err)
			}
			var size int64
			err = out.WriteNamed(flat.DatasetFileName(level), func(w io.Writer) error {
				cw := &countingWriter{w: w}
				err := json.NewEncoder(cw).Encode(ds)
				size = cw.n
				return err
			})
			if err != nil {
				log.Fatalln(err)
			}
			slog.Info("Generated dataset", "level", level, "ncells", ds.NCells,
				"path", out.DatasetPath(level), "size", humanize.Bytes(uint64(size)),
				"elapsed", time.Since(start).Round(time.Millisecond))
		}
	},
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func init() {
	rootCmd.AddCommand(genCmd)

	levels := make([]int, len(params.SupportedLevels))
	for i, l := range params.SupportedLevels {
		levels[i] = int(l)
	}
	pFlags := genCmd.PersistentFlags()
	pFlags.StringVar(&optGenOut, "out", params.DatadirRoot, "Output directory")
	pFlags.IntSliceVar(&optGenLevels, "levels", levels, "Levels to generate")
}
