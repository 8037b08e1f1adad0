package api

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisher_Publish(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, broadcastChannel)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	p := NewRedisPublisher(rdb)
	p.Publish(ctx, eventGameUpdated, Game{ID: 3, Name: "Dota 2", Price: 0})

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, broadcastChannel, msg.Channel)
		assert.JSONEq(t,
			`{"type":"game.updated","payload":{"id":3,"name":"Dota 2","likes":0,"comments":"","price":0}}`,
			msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestRedisPublisher_DownIsBestEffort(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	p := NewRedisPublisher(rdb)
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), eventUserDeleted, map[string]any{"id": 1})
	})
}

func TestHTTPServer_NilPublisher(t *testing.T) {
	s := NewHTTPServer(new(MockStore), nil)
	assert.NotPanics(t, func() {
		s.publish(context.Background(), eventGameDeleted, map[string]any{"id": 1})
	})
}
