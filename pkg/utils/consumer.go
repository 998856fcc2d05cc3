package utils

import (
	"fmt"
	"os"
)

// ConsumerName returns prefix suffixed with the host name and pid, unique per
// worker process inside a consumer group.
func ConsumerName(prefix string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return fmt.Sprintf("%s-%s-%d", prefix, host, os.Getpid())
}
