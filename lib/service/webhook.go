package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/shivxnshxrma/mysterymessages/db/models"
)

func (svc *MessagesService) StartWebhookSubscription(ctx context.Context, url string) {
	svc.Logger.Infof("Starting webhook subscription with webhook url %s", url)
	incomingMessages := make(chan models.Message)
	subId := svc.MessagePubSub.Subscribe(TopicMessageReceived, incomingMessages)
	defer svc.MessagePubSub.Unsubscribe(subId, TopicMessageReceived)
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-incomingMessages:
			svc.postToWebhook(message, url)
		}
	}
}

func (svc *MessagesService) postToWebhook(message models.Message, url string) {
	payload := new(bytes.Buffer)
	err := json.NewEncoder(payload).Encode(message)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	resp, err := http.Post(url, "application/json", payload)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			svc.Logger.Error(err)
		}
		svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
	}
}
