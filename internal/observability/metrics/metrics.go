package metrics

import "github.com/prometheus/client_golang/prometheus"

// BotMetrics exposes counters/histograms for the conversational flow. All
// observe methods are safe on a nil receiver so callers can skip wiring
// metrics in tests.
type BotMetrics struct {
	inboundTotal     *prometheus.CounterVec
	outboundTotal    *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
	handleLatency    *prometheus.HistogramVec
}

func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	m := &BotMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salonbot",
			Subsystem: "conversation",
			Name:      "inbound_messages_total",
			Help:      "Total inbound customer messages",
		}, []string{"platform", "intent"}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salonbot",
			Subsystem: "conversation",
			Name:      "outbound_messages_total",
			Help:      "Total outbound bot replies",
		}, []string{"platform", "status"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salonbot",
			Subsystem: "conversation",
			Name:      "state_transitions_total",
			Help:      "Total booking flow state transitions",
		}, []string{"from", "to"}),
		handleLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salonbot",
			Subsystem: "conversation",
			Name:      "handle_latency_seconds",
			Help:      "Latency of message handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"platform"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.outboundTotal, m.transitionsTotal, m.handleLatency)
	return m
}

func (m *BotMetrics) ObserveInbound(platform, intent string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(platform, intent).Inc()
}

func (m *BotMetrics) ObserveOutbound(platform, status string) {
	if m == nil {
		return
	}
	m.outboundTotal.WithLabelValues(platform, status).Inc()
}

func (m *BotMetrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *BotMetrics) ObserveHandleLatency(platform string, seconds float64) {
	if m == nil {
		return
	}
	m.handleLatency.WithLabelValues(platform).Observe(seconds)
}

// PaymentMetrics tracks M-Pesa STK push initiations and callbacks.
type PaymentMetrics struct {
	stkTotal      *prometheus.CounterVec
	callbackTotal *prometheus.CounterVec
}

func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	m := &PaymentMetrics{
		stkTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salonbot",
			Subsystem: "payments",
			Name:      "stk_push_total",
			Help:      "Total STK push initiation attempts",
		}, []string{"status"}),
		callbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salonbot",
			Subsystem: "payments",
			Name:      "callback_total",
			Help:      "Total Daraja payment callbacks received",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.stkTotal, m.callbackTotal)
	return m
}

func (m *PaymentMetrics) ObserveSTKPush(status string) {
	if m == nil {
		return
	}
	m.stkTotal.WithLabelValues(status).Inc()
}

func (m *PaymentMetrics) ObserveCallback(result string) {
	if m == nil {
		return
	}
	m.callbackTotal.WithLabelValues(result).Inc()
}
