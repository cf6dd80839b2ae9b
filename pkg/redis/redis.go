package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"AdvisoryAssistant/pkg/assistant"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultHistoryLimit = 20
	defaultSessionTTL   = 30 * time.Minute
	keyPrefix           = "chat:session:"
)

// IRedis keeps per-session chat history so the engine, which is stateless,
// can be handed the recent conversation on every turn.
type IRedis interface {
	GetHistory(ctx context.Context, sessionID string) ([]assistant.Message, error)
	AppendHistory(ctx context.Context, sessionID string, messages ...assistant.Message) error
	DeleteHistory(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

type redisClient struct {
	client *redis.Client
	limit  int64
	ttl    time.Duration
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return NewWithClient(client, historyLimitFromEnv(), sessionTTLFromEnv())
}

// NewWithClient wraps an existing client. Non-positive limit or ttl fall
// back to the defaults.
func NewWithClient(client *redis.Client, limit int, ttl time.Duration) IRedis {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &redisClient{
		client: client,
		limit:  int64(limit),
		ttl:    ttl,
	}
}

func historyLimitFromEnv() int {
	limit, err := strconv.Atoi(os.Getenv("CHAT_HISTORY_LIMIT"))
	if err != nil {
		return defaultHistoryLimit
	}
	return limit
}

func sessionTTLFromEnv() time.Duration {
	ttl, err := time.ParseDuration(os.Getenv("CHAT_SESSION_TTL"))
	if err != nil {
		return defaultSessionTTL
	}
	return ttl
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *redisClient) GetHistory(ctx context.Context, sessionID string) ([]assistant.Message, error) {
	logrus.Debug(fmt.Sprintf("Getting chat history for session %s", sessionID))

	raw, err := r.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error getting chat history for session %s: %v", sessionID, err))
		return nil, err
	}

	history := make([]assistant.Message, 0, len(raw))
	for _, item := range raw {
		var msg assistant.Message
		if err := json.UnmarshalFromString(item, &msg); err != nil {
			logrus.Warn(fmt.Sprintf("Skipping malformed history entry for session %s: %v", sessionID, err))
			continue
		}
		history = append(history, msg)
	}

	return history, nil
}

func (r *redisClient) AppendHistory(ctx context.Context, sessionID string, messages ...assistant.Message) error {
	if len(messages) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		encoded, err := json.MarshalToString(msg)
		if err != nil {
			return err
		}
		values = append(values, encoded)
	}

	key := sessionKey(sessionID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, -r.limit, -1)
	pipe.Expire(ctx, key, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		logrus.Error(fmt.Sprintf("Error appending chat history for session %s: %v", sessionID, err))
		return err
	}

	logrus.Debug(fmt.Sprintf("Appended %d messages to session %s", len(messages), sessionID))
	return nil
}

func (r *redisClient) DeleteHistory(ctx context.Context, sessionID string) error {
	logrus.Debug(fmt.Sprintf("Deleting chat history for session %s", sessionID))
	result, err := r.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting chat history for session %s: %v", sessionID, err))
		return err
	}

	if result == 0 {
		logrus.Debug(fmt.Sprintf("Chat session %s not found for deletion", sessionID))
	}

	return nil
}

func (r *redisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
