package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/cmsperf/topreco/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording pipeline counters", func() {
			So(func() {
				metrics.RecordFileProcessed()
				metrics.RecordFileFailed()
				metrics.RecordFileDuplicate()
				metrics.RecordEventsRead(1000)
				metrics.RecordEventsKept(900)
				metrics.RecordFileReadLatency(12.5)
				metrics.RecordArrayWritten()
				metrics.RecordArrayLoaded()
				metrics.RecordStoreWriteLatency(3.0)
				metrics.RecordPlotWritten()
				metrics.RecordPlotRenderLatency(42.0)
				metrics.RecordErrorByComponent("ingest", "missing_tree")
			}, ShouldNotPanic)
		})

		Convey("When updating queue and worker gauges", func() {
			So(func() {
				metrics.UpdateQueueCapacity(1024)
				metrics.UpdateQueueSize(12)
				metrics.UpdateQueueUtilization(12.0 / 1024.0)
				metrics.RecordQueueEnqueue()
				metrics.RecordQueueDequeue()
				metrics.RecordQueueEnqueueError()
				metrics.UpdateWorkerActiveCount(8)
				metrics.RecordWorkerProcessingLatency(5.0)
				metrics.RecordWorkerError()
			}, ShouldNotPanic)
		})

		Convey("When scraping the metrics handler", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/metrics", nil)
			metrics.Handler().ServeHTTP(rec, req)

			Convey("Then the scrape should succeed and expose pipeline metrics", func() {
				So(rec.Code, ShouldEqual, 200)
				So(rec.Body.String(), ShouldContainSubstring, "topreco_pipeline_files_processed_total")
				So(rec.Body.String(), ShouldContainSubstring, "topreco_pipeline_queue_size")
			})
		})
	})
}

func TestNewManager(t *testing.T) {
	Convey("Given metrics manager options", t, func() {
		Convey("When constructing a manager with a custom namespace", func() {
			m := metrics.NewManager(
				metrics.WithNamespace("custom"),
				metrics.WithSubsystem("test"),
				metrics.WithHistogramBuckets([]float64{1, 10, 100}),
			)

			Convey("Then the manager should be created", func() {
				So(m, ShouldNotBeNil)
			})
		})
	})
}
