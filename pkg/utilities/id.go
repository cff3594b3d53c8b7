package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// RequestIDHeader carries the request id between client, middleware and logs.
const RequestIDHeader = "X-Request-ID"

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewRequestID returns a KSUID string used to correlate a request across log lines.
func NewRequestID() string {
	return ksuid.New().String()
}

// NewSnowflakeID generates a snowflake ID string using the node ID from
// SNOWFLAKE_NODE (default 1). The node is created once per process so IDs
// stay monotonic. If the node cannot be initialized it falls back to a KSUID.
func NewSnowflakeID() string {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v, err := strconv.ParseInt(os.Getenv("SNOWFLAKE_NODE"), 10, 64); err == nil {
			nodeID = v
		}
		n, err := snowflake.NewNode(nodeID)
		if err == nil {
			node = n
		}
	})
	if node == nil {
		return NewRequestID()
	}
	return node.Generate().String()
}
