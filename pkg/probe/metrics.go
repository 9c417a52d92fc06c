// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package probe

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsProbe holds the process-wide Prometheus metrics for the search
// pipeline, registered lazily the first time Run executes and shared by
// every later run.
type metricsProbe struct {
	once sync.Once

	filesScanned   prometheus.Counter
	filesSkipped   prometheus.Counter
	blocksExtacted prometheus.Counter
	blocksMerged   prometheus.Counter

	searchDuration prometheus.Histogram
	parseDuration  prometheus.Histogram
	rankDuration   prometheus.Histogram
	totalDuration  prometheus.Histogram
}

var probeMetrics metricsProbe

func (m *metricsProbe) init() {
	m.once.Do(func() {
		m.filesScanned = prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_files_scanned_total", Help: "Files read and pattern-matched"})
		m.filesSkipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_files_skipped_total", Help: "Files skipped due to I/O errors"})
		m.blocksExtacted = prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_blocks_extracted_total", Help: "CodeBlocks extracted from matched lines"})
		m.blocksMerged = prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_blocks_merged_total", Help: "CodeBlocks produced by merge_code_blocks"})

		buckets := []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
		m.searchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "probe_search_seconds", Help: "Duration of the file-search stage", Buckets: buckets})
		m.parseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "probe_parse_seconds", Help: "Duration of the block-extraction stage", Buckets: buckets})
		m.rankDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "probe_rank_seconds", Help: "Duration of the ranking stage", Buckets: buckets})
		m.totalDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "probe_total_seconds", Help: "Duration of a complete Run invocation", Buckets: buckets})

		prometheus.MustRegister(
			m.filesScanned, m.filesSkipped, m.blocksExtacted, m.blocksMerged,
			m.searchDuration, m.parseDuration, m.rankDuration, m.totalDuration,
		)
	})
}
