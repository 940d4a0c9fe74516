package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	}, []string{"channel"})

	CheckoutFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Total number of failed checkouts",
	}, []string{"reason"})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Total number of order status transitions",
	}, []string{"to"})

	StatusConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_status_conflicts_total",
		Help: "Total number of status transitions rejected by the expected-status check",
	})

	CartOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Total number of cart mutations",
	}, []string{"op"})

	StorefrontViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_views_total",
		Help: "Total number of storefront reads",
	})

	TrackLookupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "track_lookups_total",
		Help: "Total number of public order tracking lookups",
	})

	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "image_uploads_total",
		Help: "Total number of image upload attempts",
	}, []string{"result"})

	CheckoutLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_latency_seconds",
		Help:    "Latency of the checkout flow",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
