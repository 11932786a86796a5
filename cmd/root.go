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
	"fmt"
	"github.com/cyz14/s2cells/common"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"log/slog"
	"os"
	"strings"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s2cells",
	Short: "Draw S2 cells by level",
	Long: `Loads S2 cell datasets by subdivision level and draws every cell
as an extruded outline and an extruded polygon.

Datasets can be generated (gen), served with a live viewer (webd)
or viewed headless from any data source (view).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.s2cells.yaml)")
	pFlags.String("log.level", "info", "Log level: debug, info, warn, error")
	pFlags.String("log.format", "text", "Log format: text or json")
	bindFlags("", pFlags, "log.level", "log.format")
}

// bindFlags binds the named flags to viper keys prefix+name,
// so each can also be set from the config file or S2CELLS_ env.
func bindFlags(prefix string, flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if err := viper.BindPFlag(prefix+name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in .env, the config file and ENV variables if set.
// S2CELLS_LOG_LEVEL overrides log.level, and so on.
func initConfig() {
	if err := godotenv.Load(".env"); err == nil {
		slog.Debug("Loaded .env")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigName(".s2cells")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("S2CELLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaultSlog installs the default logger from the log.level and log.format settings.
func setDefaultSlog(cmd *cobra.Command, args []string) {
	level, err := common.ParseSlogLevel(viper.GetString("log.level"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	handler, err := common.NewSlogHandler(os.Stderr, viper.GetString("log.format"), level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(handler).With("cmd", cmd.Name()))
}
