package pubsub

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/pubsub"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var ctx context.Context
var client *pubsub.Client

// Publishable is any payload that knows the topic it should be published on.
type Publishable interface {
	GetEventTopicName() string
}

func InitPubSub() {
	projectID := viper.GetString("GOOGLE_PROJECT_ID")
	if projectID == "" {
		log.Fatal().Msg("Pub sub missing projectID to initialize")
	}

	ctx = context.Background()
	var err error
	client, err = pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing pub sub connection")
		return
	}
	log.Info().Str("projectId", projectID).Msg("Successful pubsub init")
}

// Publish is fire-and-forget: delivery failures are logged, never returned,
// so a broken broker cannot fail the request that produced the event.
func Publish(message Publishable) {
	t := getTopic(message.GetEventTopicName())
	defer t.Stop()

	result := t.Publish(ctx, &pubsub.Message{Data: encodeMessage(message)})

	go func(res *pubsub.PublishResult) {
		_, err := res.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Str("topic", message.GetEventTopicName()).Msg("Failed to publish message")
		}
	}(result)
}

func CloseClient() {
	if client != nil {
		client.Close()
	}
}

func getTopic(topicName string) *pubsub.Topic {
	t := client.Topic(topicName)
	if t == nil {
		log.Info().Str("topic", topicName).Msg("Topic does not exist. Creating new")
		nt, err := client.CreateTopic(ctx, topicName)
		if err != nil {
			log.Error().Err(err).Str("topic", topicName).Msg("Cannot create topic")
		}
		return nt
	}
	return t
}

func encodeMessage(message any) []byte {
	switch m := message.(type) {
	case string:
		return []byte(m)
	default:
		bytes, _ := json.Marshal(message)
		return bytes
	}
}
