package params

import "github.com/cyz14/s2cells/s2"

type WebDaemonConfig struct {
	ListenerConfig

	// DataDir is searched for pre-generated s2level{N}_cells.json files.
	// Levels without a file are generated on demand.
	DataDir string

	// DataLevels are the levels the daemon will serve datasets for.
	DataLevels []s2.CellLevel

	// Viewer configures the embedded viewer whose redraws are pushed to websocket clients.
	// Its DataSourceBase is filled from the listener address when empty.
	Viewer *ViewerConfig
}

func DefaultWebListenerConfig() ListenerConfig {
	return ListenerConfig{
		Network: "tcp",
		Address: "localhost:3000",
	}
}

func DefaultWebDaemonConfig() *WebDaemonConfig {
	return &WebDaemonConfig{
		DataDir:        DatadirRoot,
		ListenerConfig: DefaultWebListenerConfig(),
		DataLevels:     SupportedLevels,
		Viewer:         DefaultViewerConfig(),
	}
}

func DefaultTestWebDaemonConfig() *WebDaemonConfig {
	return &WebDaemonConfig{
		DataDir: "",
		ListenerConfig: ListenerConfig{
			Network: "tcp",
			Address: "localhost:3333",
		},
		DataLevels: SupportedLevels,
		Viewer:     DefaultTestViewerConfig(),
	}
}
