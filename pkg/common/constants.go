package common

const (
	RedisStreamEventNormalize = "bias.event.normalize"
	RedisStreamScoreRecompute = "bias.score.recompute"

	RedisStreamGroup    = "bias-worker-group"
	RedisStreamConsumer = "bias-worker-consumer"

	// RedisStreamPayloadField is the stream entry field holding the JSON-encoded task.
	RedisStreamPayloadField = "payload"
)

// Default bounds applied when configuration leaves them unset.
const (
	DefaultMaxIngestBatchSize = 1000
	DefaultMaxHeatmapAssets   = 50
	DefaultClampBound         = 24
	DefaultDisplayDivisor     = 8.0
	DefaultDisplayDecimals    = 2
)
