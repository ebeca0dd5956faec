// Package bus provides the publish/subscribe transport the alerter shells
// use to receive transformed metric data and emit alerts: a thin
// NATS-backed implementation of SPEC_FULL.md §6's topic-exchange bus, plus
// an in-memory double for tests.
package bus

import "fmt"

// Subjects mirror the original routing-key scheme (subject dots stand in
// for the routing-key dots of alerter/src/utils/constants/rabbitmq.py)
// rather than being renamed to anything NATS-specific, so the wire
// vocabulary described in SPEC_FULL.md §6 is unchanged.
const (
	SystemRawData   = "system"
	ChainlinkRawData = "node.chainlink"
	GithubRawData   = "github"

	GithubTransformedData    = "transformed_data.github"
	ChainlinkTransformedData = "transformed_data.node.chainlink"

	SystemAlert    = "alert.system"
	GithubAlert    = "alert.github"
	ChainlinkAlert = "alert.node.chainlink"

	Ping             = "ping"
	HeartbeatWorker  = "heartbeat.worker"
	HeartbeatManager = "heartbeat.manager"
)

// SystemTransformedData returns the per-chain subject for transformed
// system metrics, mirroring SYSTEM_TRANSFORMED_DATA_ROUTING_KEY_TEMPLATE.
func SystemTransformedData(parentID string) string {
	return fmt.Sprintf("transformed_data.system.%s", parentID)
}

// ChannelSubject returns the subject an alert-routing channel handler
// subscribes to, mirroring CHANNEL_HANDLER_INPUT_ROUTING_KEY_TEMPLATE.
func ChannelSubject(channelID string) string {
	return fmt.Sprintf("channel.%s", channelID)
}
