// Package config provides the settings of textkernel.
//
// Settings are layered, higher layers overriding lower ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← TEXTKERNEL_ENGINE_READ_ONLY=true
//	├─────────────────────────────┤
//	│  2. Config File             │  ← textkernel.toml or textkernel.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load(config.WithFile("textkernel.toml"))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Engine.MaxUndoEntries)
//
// # Configuration Files
//
// TOML and YAML files use the same keys:
//
//	[engine]
//	readOnly = false
//	newline = "lf"
//	maxUndoEntries = 1000
//
//	[logging]
//	level = "info"
//
// # Environment Variables
//
// Variables with the TEXTKERNEL_ prefix map to settings by section and
// camelCased name: TEXTKERNEL_ENGINE_MAX_UNDO_ENTRIES sets
// engine.maxUndoEntries. TEXTKERNEL_LOG_LEVEL and TEXTKERNEL_READ_ONLY
// are shorthands for logging.level and engine.readOnly.
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment variable loading
//   - watcher: file watching for re-running scripts on change
package config
