package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.RowsIngestedTotal == nil {
		t.Error("RowsIngestedTotal not initialized")
	}
	if r.InvalidWeightsTotal == nil {
		t.Error("InvalidWeightsTotal not initialized")
	}
	if r.MalformedRowsTotal == nil {
		t.Error("MalformedRowsTotal not initialized")
	}
	if r.BuildDuration == nil {
		t.Error("BuildDuration not initialized")
	}
	if r.CommunitiesTotal == nil {
		t.Error("CommunitiesTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRecordBuild(t *testing.T) {
	r := NewRegistry()
	r.RecordBuild(120*time.Millisecond, 140, 480)

	var metric dto.Metric
	if err := r.GraphNodesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	if metric.GetGauge().GetValue() != 140 {
		t.Errorf("Expected 140 nodes, got %v", metric.GetGauge().GetValue())
	}

	if err := r.GraphEdgesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	if metric.GetGauge().GetValue() != 480 {
		t.Errorf("Expected 480 edges, got %v", metric.GetGauge().GetValue())
	}
}

func TestRecordLabeling(t *testing.T) {
	r := NewRegistry()
	r.RecordLabeling(5*time.Millisecond, 12, 7)

	var metric dto.Metric
	if err := r.CommunitiesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	if metric.GetGauge().GetValue() != 12 {
		t.Errorf("Expected 12 communities, got %v", metric.GetGauge().GetValue())
	}

	if err := r.SingletonCommunities.Write(&metric); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	if metric.GetGauge().GetValue() != 7 {
		t.Errorf("Expected 7 singletons, got %v", metric.GetGauge().GetValue())
	}
}

func TestGatherExposesPipelineMetrics(t *testing.T) {
	r := NewRegistry()
	r.RowsIngestedTotal.Inc()

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "cohort_rows_ingested_total" {
			found = true
		}
	}
	if !found {
		t.Error("cohort_rows_ingested_total not exposed by registry")
	}
}
