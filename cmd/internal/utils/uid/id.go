// Package uid hands out the snowflake ids used as primary keys.
package uid

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/gommon/log"
)

var ErrInvalidID = errors.New("invalid id")

var (
	node    *snowflake.Node
	once    sync.Once
	initErr error
)

// Init configures the node for machineID. Only the first call has effect,
// tests call it freely.
func Init(machineID int64) error {
	once.Do(func() {
		node, initErr = snowflake.NewNode(machineID)
	})
	return initErr
}

func Generate() int64 {
	if node == nil {
		log.Fatalf("uid package not initialized")
	}
	return node.Generate().Int64()
}

// Parse reads an id in the decimal form the API exposes.
func Parse(s string) (int64, error) {
	id, err := snowflake.ParseString(s)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id.Int64(), nil
}
