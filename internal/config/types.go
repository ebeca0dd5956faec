// Package config holds the chain/node/repository/channel/threshold
// configuration snapshot that the alerting factory and alerter shells are
// built from, plus the Viper-backed loader and fsnotify-backed hot-reload
// path that keep it current.
package config

import "github.com/shopspring/decimal"

// ThresholdConfig is the per-metric, per-chain configuration recognized by
// every classifier protocol in internal/alerting. Not every field applies
// to every protocol; unused fields are simply left at their zero value.
type ThresholdConfig struct {
	Enabled                bool            `mapstructure:"enabled" yaml:"enabled"`
	WarningEnabled         bool            `mapstructure:"warning_enabled" yaml:"warning_enabled"`
	CriticalEnabled        bool            `mapstructure:"critical_enabled" yaml:"critical_enabled"`
	CriticalRepeatEnabled  bool            `mapstructure:"critical_repeat_enabled" yaml:"critical_repeat_enabled"`
	WarningThreshold       decimal.Decimal `mapstructure:"warning_threshold" yaml:"warning_threshold"`
	CriticalThreshold      decimal.Decimal `mapstructure:"critical_threshold" yaml:"critical_threshold"`
	WarningTimeWindowSecs  int64           `mapstructure:"warning_time_window" yaml:"warning_time_window"`
	CriticalTimeWindowSecs int64           `mapstructure:"critical_time_window" yaml:"critical_time_window"`
	CriticalRepeatSecs     int64           `mapstructure:"critical_repeat" yaml:"critical_repeat"`
}

// Equal reports field-wise equality, used to detect that
// alerting.Store.CreateState is being re-invoked with an identical config
// (the idempotent-creation case) rather than a genuine reconfiguration.
func (c ThresholdConfig) Equal(other ThresholdConfig) bool {
	return c.Enabled == other.Enabled &&
		c.WarningEnabled == other.WarningEnabled &&
		c.CriticalEnabled == other.CriticalEnabled &&
		c.CriticalRepeatEnabled == other.CriticalRepeatEnabled &&
		c.WarningThreshold.Equal(other.WarningThreshold) &&
		c.CriticalThreshold.Equal(other.CriticalThreshold) &&
		c.WarningTimeWindowSecs == other.WarningTimeWindowSecs &&
		c.CriticalTimeWindowSecs == other.CriticalTimeWindowSecs &&
		c.CriticalRepeatSecs == other.CriticalRepeatSecs
}

// ChainConfig groups everything known about one monitored chain: its
// parent id, the nodes/repos that belong to it, and the per-metric
// threshold table.
type ChainConfig struct {
	ParentID   string                     `mapstructure:"parent_id" yaml:"parent_id"`
	ChainName  string                     `mapstructure:"chain_name" yaml:"chain_name"`
	Nodes      []NodeConfig               `mapstructure:"nodes" yaml:"nodes"`
	Repos      []RepoConfig               `mapstructure:"repos" yaml:"repos"`
	Thresholds map[string]ThresholdConfig `mapstructure:"thresholds" yaml:"thresholds"`
}

// NodeConfig identifies one monitorable node within a chain.
type NodeConfig struct {
	NodeID     string `mapstructure:"node_id" yaml:"node_id"`
	NodeName   string `mapstructure:"node_name" yaml:"node_name"`
	NodePrefix string `mapstructure:"node_prefix" yaml:"node_prefix"`
	Monitor    bool   `mapstructure:"monitor" yaml:"monitor"`
}

// RepoConfig identifies one monitorable source-code repository.
type RepoConfig struct {
	RepoID   string `mapstructure:"repo_id" yaml:"repo_id"`
	RepoName string `mapstructure:"repo_name" yaml:"repo_name"`
	RepoURL  string `mapstructure:"repo_url" yaml:"repo_url"`
	Monitor  bool   `mapstructure:"monitor" yaml:"monitor"`
}

// ChannelConfig describes one alert-routing destination (Slack, Telegram,
// email, log, console). Credentials are kept encrypted at rest via
// EncryptCredential/DecryptCredential and decrypted only when a channel
// handler needs to dial out.
type ChannelConfig struct {
	ChannelID         string `mapstructure:"channel_id" yaml:"channel_id"`
	ChannelType       string `mapstructure:"channel_type" yaml:"channel_type"`
	EncryptedCreds    string `mapstructure:"encrypted_creds" yaml:"encrypted_creds"`
	WarningEnabled    bool   `mapstructure:"warning_enabled" yaml:"warning_enabled"`
	CriticalEnabled   bool   `mapstructure:"critical_enabled" yaml:"critical_enabled"`
	ErrorEnabled      bool   `mapstructure:"error_enabled" yaml:"error_enabled"`
	InfoEnabled       bool   `mapstructure:"info_enabled" yaml:"info_enabled"`
}

// Snapshot is the full config-store picture at a point in time: every
// chain this process cares about, plus the routing channels.
type Snapshot struct {
	Chains   map[string]ChainConfig   `mapstructure:"chains" yaml:"chains"`
	Channels map[string]ChannelConfig `mapstructure:"channels" yaml:"channels"`
}
