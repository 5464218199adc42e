package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates time-ordered numeric IDs using Twitter's snowflake
// layout. IDs from different nodes never collide as long as node numbers are
// unique within the deployment.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a snowflake generator for the given node number.
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: n}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() uint64 {
	return uint64(s.node.Generate().Int64())
}
