// Package metrics 提供 Prometheus 指标：HTTP 请求、购物车对账与订单业务计数
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/storefront/pkg/logger"
)

const namespace = "storefront"

// Metrics 指标集合。所有 Record 方法允许 nil 接收者，便于测试中省略指标
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 购物车变更计数，按操作区分
	CartMutationsTotal *prometheus.CounterVec
	// 结算前校验计数，按结果区分
	CartValidationsTotal *prometheus.CounterVec
	// 校验错误计数，按错误码区分
	CartValidationErrorsTotal *prometheus.CounterVec
	// 自动修复计数，按修复类型区分
	CartFixesAppliedTotal *prometheus.CounterVec

	// 下单结果计数
	OrdersTotal *prometheus.CounterVec
	// 订单状态流转计数
	OrderTransitionsTotal *prometheus.CounterVec
}

// New 创建指标实例并注册到独立的 registry
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CartMutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "cart_mutations_total",
			Help:      "Cart mutations by operation",
		}, []string{"op"}),
		CartValidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "cart_validations_total",
			Help:      "Checkout validations by outcome",
		}, []string{"outcome"}),
		CartValidationErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "cart_validation_errors_total",
			Help:      "Blocking validation errors by code",
		}, []string{"code"}),
		CartFixesAppliedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "cart_fixes_applied_total",
			Help:      "Automatic cart fixes applied by kind",
		}, []string{"kind"}),
		OrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "orders_total",
			Help:      "Order placement attempts by outcome",
		}, []string{"outcome"}),
		OrderTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "order_transitions_total",
			Help:      "Order status transitions by target status",
		}, []string{"to"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CartMutationsTotal,
		m.CartValidationsTotal,
		m.CartValidationErrorsTotal,
		m.CartFixesAppliedTotal,
		m.OrdersTotal,
		m.OrderTransitionsTotal,
	)
	return m
}

// Registry 返回底层 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NewServer 创建 Prometheus HTTP 服务器，由调用方负责启动和关闭
func (m *Metrics) NewServer(port int, path string) *http.Server {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Prometheus HTTP server configured", "addr", addr, "path", path)
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

// RecordHTTPRequest 记录 HTTP 请求
func (m *Metrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCartMutation 记录购物车变更
func (m *Metrics) RecordCartMutation(op string) {
	if m == nil {
		return
	}
	m.CartMutationsTotal.WithLabelValues(op).Inc()
}

// RecordValidation 记录一次结算前校验及其错误码
func (m *Metrics) RecordValidation(valid bool, errorCodes []string) {
	if m == nil {
		return
	}
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	m.CartValidationsTotal.WithLabelValues(outcome).Inc()
	for _, code := range errorCodes {
		m.CartValidationErrorsTotal.WithLabelValues(code).Inc()
	}
}

// RecordFixApplied 记录一次自动修复
func (m *Metrics) RecordFixApplied(kind string) {
	if m == nil {
		return
	}
	m.CartFixesAppliedTotal.WithLabelValues(kind).Inc()
}

// RecordOrder 记录下单结果：placed, rejected, conflict, failed
func (m *Metrics) RecordOrder(outcome string) {
	if m == nil {
		return
	}
	m.OrdersTotal.WithLabelValues(outcome).Inc()
}

// RecordOrderTransition 记录订单状态流转
func (m *Metrics) RecordOrderTransition(to string) {
	if m == nil {
		return
	}
	m.OrderTransitionsTotal.WithLabelValues(to).Inc()
}
