package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/makimaki1006/shift-suite-sub009/internal/metrics"
	"github.com/makimaki1006/shift-suite-sub009/internal/models"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// valkeySingleImpl implements ReportCache against a single-node Valkey/Redis
// instance.
type valkeySingleImpl struct {
	client *redis.Client
	logger logger.Logger
	ttl    time.Duration
}

func NewValkeySingle(addr string, db int, password string, defaultTTL time.Duration, log logger.Logger) (ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to Valkey at %s: %w", addr, err)
	}

	return &valkeySingleImpl{
		client: client,
		logger: log,
		ttl:    defaultTTL,
	}, nil
}

func (v *valkeySingleImpl) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := v.client.Get(ctx, key).Bytes()
	switch {
	case err == redis.Nil:
		metrics.RecordReportCacheOperation("get", "miss")
		return nil, fmt.Errorf("key not found: %s", key)
	case err != nil:
		metrics.RecordReportCacheOperation("get", "error")
		return nil, err
	}
	metrics.RecordReportCacheOperation("get", "hit")
	return b, nil
}

func (v *valkeySingleImpl) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := encodeValue(value)
	if err != nil {
		metrics.RecordReportCacheOperation("set", "error")
		return fmt.Errorf("marshal value for key %s: %w", key, err)
	}
	if ttl <= 0 {
		ttl = v.ttl
	}
	if err := v.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.RecordReportCacheOperation("set", "error")
		return err
	}
	metrics.RecordReportCacheOperation("set", "success")
	return nil
}

// encodeValue passes raw bytes and strings through and JSON-marshals
// everything else.
func encodeValue(value interface{}) ([]byte, error) {
	switch x := value.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	default:
		return json.Marshal(x)
	}
}

func (v *valkeySingleImpl) Delete(ctx context.Context, key string) error {
	err := v.client.Del(ctx, key).Err()
	if err != nil {
		metrics.RecordReportCacheOperation("delete", "error")
		return err
	}
	metrics.RecordReportCacheOperation("delete", "success")
	return nil
}

func (v *valkeySingleImpl) CacheReport(ctx context.Context, partitionKey string, report *models.ShortageReport, ttl time.Duration) error {
	return v.Set(ctx, reportKey(partitionKey), report, ttl)
}

func (v *valkeySingleImpl) GetCachedReport(ctx context.Context, partitionKey string) (*models.ShortageReport, error) {
	data, err := v.Get(ctx, reportKey(partitionKey))
	if err != nil {
		return nil, err
	}
	var report models.ShortageReport
	if err := json.Unmarshal(data, &report); err != nil {
		metrics.RecordReportCacheOperation("get_report", "error")
		return nil, fmt.Errorf("failed to unmarshal shortage report: %w", err)
	}
	return &report, nil
}

// HealthCheck pings the Valkey single-node instance.
func (v *valkeySingleImpl) HealthCheck(ctx context.Context) error {
	if ctx == nil {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ctx = c
	}
	return v.client.Ping(ctx).Err()
}

func reportKey(partitionKey string) string {
	return fmt.Sprintf("shortage_report:%s", partitionKey)
}
