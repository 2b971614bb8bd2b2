package notifications

import (
	"context"

	"github.com/clapo-social/client-core/pkg/rdb"
	"github.com/clapo-social/client-core/pkg/structs"
	"github.com/clapo-social/client-core/pkg/utils"
	"github.com/getsentry/sentry-go"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// RedisNotifier publishes toast packets on the user's pub/sub channel for
// connected sessions to pick up.
type RedisNotifier struct {
	logger *zap.Logger
}

func NewRedisNotifier(logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{logger: logger}
}

func (n *RedisNotifier) Notify(userId string, message string, kind Kind) {
	// Marshal packet
	marshaledPacket, err := msgpack.Marshal(&structs.V0Toast{
		Message: message,
		Kind:    string(kind),
	})
	if err != nil {
		n.logger.Error("marshal toast packet", zap.Error(err))
		sentry.CaptureException(err)
		return
	}
	marshaledPacket = append(marshaledPacket, utils.EvOpToast)

	// Send packet
	if err := rdb.Client.Publish(context.TODO(), rdb.UserChannel(userId), marshaledPacket).Err(); err != nil {
		n.logger.Error("publish toast packet", zap.Error(err), zap.String("user", userId))
		sentry.CaptureException(err)
	}
}
