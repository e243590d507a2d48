package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/mq"
)

func testConfig() *config.Config {
	return &config.Config{ServiceName: "cart", Environment: "test"}
}

func TestNewPublisher_FallsBackToLog(t *testing.T) {
	pub, closer := NewPublisher(testConfig())
	_, ok := pub.(*mq.LogPublisher)
	assert.True(t, ok)
	require.NoError(t, closer())
}

func TestNewPublisher_Kafka(t *testing.T) {
	cfg := testConfig()
	cfg.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Kafka.TopicPrefix = "storefront."

	pub, closer := NewPublisher(cfg)
	_, ok := pub.(*mq.TopicPublisher)
	assert.True(t, ok)
	require.NoError(t, closer())
}

func TestNewRouter_Healthz(t *testing.T) {
	r := NewRouter(testConfig(), metrics.New("bootstrap_test"), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"cart"`)
}
