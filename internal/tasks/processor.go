package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"contacthub/internal/storage"
)

// Processor executes maintenance tasks enqueued by the API and the
// scheduler: removing orphaned photo objects, purging a deleted user's
// photos, and sweeping stale temp uploads.
type Processor struct {
	store  *storage.ObjectStore
	logger zerolog.Logger
}

func NewProcessor(store *storage.ObjectStore, logger zerolog.Logger) *Processor {
	return &Processor{
		store:  store,
		logger: logger,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	taskType, _ := msg.Values["type"].(string)

	switch taskType {
	case "photo_cleanup":
		return p.photoCleanup(ctx, msg)
	case "user_purge":
		return p.userPurge(ctx, msg)
	case "sweep":
		return p.sweep(ctx)
	default:
		p.logger.Warn().Str("type", taskType).Str("message_id", msg.ID).Msg("unknown task type")
		return nil
	}
}

func (p *Processor) photoCleanup(ctx context.Context, msg redis.XMessage) error {
	bucket, _ := msg.Values["bucket"].(string)
	objectKey, _ := msg.Values["object"].(string)
	if bucket == "" || objectKey == "" {
		return fmt.Errorf("photo_cleanup: missing bucket or object in message %s", msg.ID)
	}

	if err := p.store.RemoveObject(ctx, bucket, objectKey); err != nil {
		return err
	}
	p.logger.Info().Str("object", objectKey).Msg("photo removed")
	return nil
}

func (p *Processor) userPurge(ctx context.Context, msg redis.XMessage) error {
	userID, _ := msg.Values["userId"].(string)
	if userID == "" {
		return fmt.Errorf("user_purge: missing userId in message %s", msg.ID)
	}

	removed := 0
	for object := range p.store.ListPrefix(ctx, userID+"/") {
		if object.Err != nil {
			return object.Err
		}
		if err := p.store.RemoveObject(ctx, p.store.Bucket(), object.Key); err != nil {
			p.logger.Error().Err(err).Str("object", object.Key).Msg("purge remove failed")
			continue
		}
		removed++
	}

	p.logger.Info().Str("user_id", userID).Int("removed", removed).Msg("user photos purged")
	return nil
}

// sweep drops temp uploads older than a day and reports bucket usage.
func (p *Processor) sweep(ctx context.Context) error {
	var totalObjects int
	var totalBytes int64
	cutoff := time.Now().Add(-24 * time.Hour)

	for object := range p.store.ListPrefix(ctx, "") {
		if object.Err != nil {
			return object.Err
		}

		if strings.HasPrefix(object.Key, "tmp/") && object.LastModified.Before(cutoff) {
			if err := p.store.RemoveObject(ctx, p.store.Bucket(), object.Key); err != nil {
				p.logger.Error().Err(err).Str("object", object.Key).Msg("sweep remove failed")
			}
			continue
		}

		totalObjects++
		totalBytes += object.Size
	}

	p.logger.Info().
		Int("objects", totalObjects).
		Int64("bytes", totalBytes).
		Msg("bucket sweep complete")
	return nil
}
