package mock

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-process Redis server with a connected client.
type Redis struct {
	server *miniredis.Miniredis
	Client *redis.Client
}

func NewRedis() *Redis {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return &Redis{
		server: server,
		Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
	}
}

// Keys lists every key currently stored.
func (r *Redis) Keys() []string {
	return r.server.Keys()
}

func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.TODO()).Err()
}

func (r *Redis) Close() {
	_ = r.Client.Close()
	r.server.Close()
}
