package config

import "time"

// Base application details
const AppName = "pixide"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "pixide.log"
const Version = "0.3.0"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Document defaults
const DefaultWidth = 16
const DefaultHeight = 16
const DefaultMaxHistory = 100
const DefaultResizeMode = "crop"
const SystemClipboard = true
const DefaultTheme = "dark"

// Autosave
const DefaultAutosaveInterval = 30 * time.Second
