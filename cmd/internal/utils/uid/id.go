package uid

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/gommon/log"
)

var (
	node *snowflake.Node
	once sync.Once

	fallbackNode *snowflake.Node
	fallbackOnce sync.Once
)

// Init sets up the process-wide snowflake node. Only the first call has any effect.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// RequestID returns a time-ordered id suitable for the X-Request-Id header.
func RequestID() string {
	if node != nil {
		return node.Generate().Base58()
	}

	fallbackOnce.Do(func() {
		log.Warn("uid: node not initialized, using node 0")
		fallbackNode, _ = snowflake.NewNode(0)
	})
	return fallbackNode.Generate().Base58()
}
