package bin

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/utils"
)

// buildSlotEventBroadcaster helper function for defining the PubSub slot event fan-out parts
func buildSlotEventBroadcaster(
	ctxt context.Context, config common.BroadcastSystemConfig,
) (goutils.PubSubClient, utils.Broadcaster, error) {
	var psClient goutils.PubSubClient
	var broadcaster utils.Broadcaster
	rawPSClient, err := goutils.CreateBasicGCPPubSubClient(
		ctxt, config.GCPProject,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create core PubSub client")
		return psClient, broadcaster, err
	}

	// Define PubSub client
	psClient, err = goutils.GetNewPubSubClientInstance(rawPSClient, log.Fields{
		"module": "go-utils", "component": "pubsub-client", "project": config.GCPProject,
	}, nil)
	if err != nil {
		log.WithError(err).Error("Failed to create PubSub client")
		return psClient, broadcaster, err
	}

	// Sync PubSub client with currently existing topics and subscriptions
	if err := psClient.UpdateLocalTopicCache(ctxt); err != nil {
		log.WithError(err).Error("Errored when syncing existing topics in GCP project")
		return psClient, broadcaster, err
	}
	if err := psClient.UpdateLocalSubscriptionCache(ctxt); err != nil {
		log.WithError(err).Error("Errored when syncing existing subscriptions in GCP project")
		return psClient, broadcaster, err
	}

	// Create the slot event topic if it does not already exist
	if err := psClient.CreateTopic(ctxt, config.PubSub.Topic, &pubsub.TopicConfig{
		RetentionDuration: config.PubSub.MsgTTL(),
	}); err != nil {
		log.WithError(err).Error("Failed to create slot event broadcast topic")
		return psClient, broadcaster, err
	}

	broadcaster, err = utils.NewPubSubBroadcaster(psClient, config.PubSub.Topic)
	if err != nil {
		log.WithError(err).Error("Failed to create slot event broadcast client")
		return psClient, broadcaster, err
	}

	return psClient, broadcaster, nil
}
