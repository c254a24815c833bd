package redis

import (
	"fmt"

	"humantask/core"
)

func instanceKey(keyPrefix string, instance *core.TaskInstance) string {
	return instanceKeyFromID(keyPrefix, instance.InstanceID())
}

func instanceKeyFromID(keyPrefix string, instanceID string) string {
	return fmt.Sprintf("%vinstance:%v", keyPrefix, instanceID)
}

func historyKey(keyPrefix string, instance *core.TaskInstance) string {
	return fmt.Sprintf("%vhistory:%v", keyPrefix, instance.InstanceID())
}

// instancesByCreation returns the key for the ZSET holding all task instance
// ids scored by creation time.
func instancesByCreation(keyPrefix string) string {
	return keyPrefix + "instances-by-creation"
}

// historyID maps a sequence id onto a stream entry id. Sequence ids start at
// 1, so the stream never needs the reserved 0-0 entry.
func historyID(sequenceID int64) string {
	return fmt.Sprintf("%v-0", sequenceID)
}
