package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func findCounter(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestBotMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBotMetrics(reg)
	m.ObserveInbound("telegram", "greeting")
	m.ObserveInbound("telegram", "greeting")
	m.ObserveTransition("idle", "awaiting_date")
	m.ObserveOutbound("telegram", "sent")
	m.ObserveHandleLatency("telegram", 0.02)

	mf := findCounter(t, reg, "salonbot_conversation_inbound_messages_total")
	if mf == nil {
		t.Fatal("inbound counter not registered")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("inbound count = %v, want 2", got)
	}
}

func TestPaymentMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPaymentMetrics(reg)
	m.ObserveSTKPush("success")
	m.ObserveCallback("paid")

	if findCounter(t, reg, "salonbot_payments_stk_push_total") == nil {
		t.Fatal("stk counter not registered")
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var b *BotMetrics
	b.ObserveInbound("telegram", "greeting")
	b.ObserveOutbound("telegram", "sent")
	b.ObserveTransition("idle", "idle")
	b.ObserveHandleLatency("telegram", 0.1)

	var p *PaymentMetrics
	p.ObserveSTKPush("success")
	p.ObserveCallback("paid")
}
