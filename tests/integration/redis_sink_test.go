package integration

import (
	"context"
	"reflect"
	"testing"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/review"
	"github.com/el-remph/hertzian-steam-tech-test/pkg/sink"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Docker not available for integration testing: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	t.Cleanup(func() {
		redisClient.Close()
		container.Terminate(ctx)
	})

	return redisClient
}

func TestRedisSink_RoundTrip(t *testing.T) {
	redisClient := setupRedis(t)
	ctx := context.Background()

	redisSink, err := sink.NewRedisSink(redisClient, "reviews-test")
	if err != nil {
		t.Fatalf("NewRedisSink failed: %v", err)
	}

	records := []review.Record{
		{
			ID:          review.Digest("1"),
			Author:      review.Digest("a"),
			Date:        "2024-01-02",
			Hours:       12,
			Content:     "solid",
			Source:      review.Source,
			Helpful:     3,
			Recommended: true,
		},
		{
			ID:      review.Digest("2"),
			Author:  review.Digest("b"),
			Date:    "2024-01-01",
			Content: "rough",
			Source:  review.Source,
			Funny:   1,
		},
	}

	batch := sink.Batch{Collection: "1382330", Index: 0, Records: records}
	if err := redisSink.Write(ctx, batch); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := redisSink.Read(ctx, "1382330", 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("Round-tripped records differ:\ngot  %v\nwant %v", got, records)
	}
}

func TestRedisSink_DistinctDestinations(t *testing.T) {
	redisClient := setupRedis(t)
	ctx := context.Background()

	redisSink, err := sink.NewRedisSink(redisClient, "reviews-test")
	if err != nil {
		t.Fatalf("NewRedisSink failed: %v", err)
	}

	first := sink.Batch{Collection: "10", Index: 0, Records: []review.Record{{ID: review.Digest("x"), Date: "2024-01-02", Source: review.Source}}}
	second := sink.Batch{Collection: "10", Index: 1, Records: []review.Record{{ID: review.Digest("y"), Date: "2024-01-01", Source: review.Source}}}

	if err := redisSink.Write(ctx, first); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := redisSink.Write(ctx, second); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got0, err := redisSink.Read(ctx, "10", 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	got1, err := redisSink.Read(ctx, "10", 1)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got0[0].ID == got1[0].ID {
		t.Error("Batches at distinct indexes overwrote each other")
	}
}
