package objectalloc

import "github.com/prometheus/client_golang/prometheus"

// statsCollector adapts an ObjectAllocator's Stats to the
// prometheus.Collector interface, mirroring the teacher's practice of
// exposing subsystem counters through prometheus/client_golang. It is
// entirely additive: nothing on the Allocate/Free path depends on it.
type statsCollector struct {
	oa     *ObjectAllocator
	labels prometheus.Labels
	descs  struct {
		pagesInUse    *prometheus.Desc
		objectsInUse  *prometheus.Desc
		freeObjects   *prometheus.Desc
		allocations   *prometheus.Desc
		deallocations *prometheus.Desc
		mostObjects   *prometheus.Desc
	}
}

// PrometheusCollector returns a prometheus.Collector exposing this
// allocator's Stats. name is used as a constant "pool" label so that
// multiple allocators can be registered against the same registry.
func (oa *ObjectAllocator) PrometheusCollector(name string) prometheus.Collector {
	c := &statsCollector{oa: oa, labels: prometheus.Labels{"pool": name}}
	c.descs.pagesInUse = prometheus.NewDesc("objectalloc_pages_in_use", "Pages currently owned by the allocator.", nil, c.labels)
	c.descs.objectsInUse = prometheus.NewDesc("objectalloc_objects_in_use", "Objects currently on loan to the client.", nil, c.labels)
	c.descs.freeObjects = prometheus.NewDesc("objectalloc_free_objects", "Objects currently on the free list.", nil, c.labels)
	c.descs.allocations = prometheus.NewDesc("objectalloc_allocations_total", "Cumulative number of Allocate calls that succeeded.", nil, c.labels)
	c.descs.deallocations = prometheus.NewDesc("objectalloc_deallocations_total", "Cumulative number of Free calls that succeeded.", nil, c.labels)
	c.descs.mostObjects = prometheus.NewDesc("objectalloc_most_objects", "Peak value ever observed for objects in use.", nil, c.labels)
	return c
}

func (c *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.descs.pagesInUse
	ch <- c.descs.objectsInUse
	ch <- c.descs.freeObjects
	ch <- c.descs.allocations
	ch <- c.descs.deallocations
	ch <- c.descs.mostObjects
}

func (c *statsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.oa.GetStats()
	ch <- prometheus.MustNewConstMetric(c.descs.pagesInUse, prometheus.GaugeValue, float64(s.PagesInUse))
	ch <- prometheus.MustNewConstMetric(c.descs.objectsInUse, prometheus.GaugeValue, float64(s.ObjectsInUse))
	ch <- prometheus.MustNewConstMetric(c.descs.freeObjects, prometheus.GaugeValue, float64(s.FreeObjects))
	ch <- prometheus.MustNewConstMetric(c.descs.allocations, prometheus.CounterValue, float64(s.Allocations))
	ch <- prometheus.MustNewConstMetric(c.descs.deallocations, prometheus.CounterValue, float64(s.Deallocations))
	ch <- prometheus.MustNewConstMetric(c.descs.mostObjects, prometheus.GaugeValue, float64(s.MostObjects))
}
