// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// The hashtabdemo command exercises a hashtab.Table end to end: it loads a
// fixed number of string keys, serves its occupancy stats over HTTP via
// the monitor package and a Prometheus collector, and periodically churns
// the table to demonstrate incremental rehashing under load.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	hglog "github.com/aristanetworks/hashtab/glog"
	"github.com/aristanetworks/hashtab/hashtab"
	"github.com/aristanetworks/hashtab/logger"
	"github.com/aristanetworks/hashtab/monitor"
	"github.com/aristanetworks/hashtab/sliceutils"
)

type record struct {
	key   string
	value int
}

func main() {
	listenAddr := flag.String("listenaddr", ":8080", "Address on which to expose /debug/vars and /metrics")
	initialSize := flag.Uint("size", 1000, "Number of records to load at startup")
	churnInterval := flag.Duration("churn-interval", time.Second,
		"How often to insert and delete a batch of records, to keep the table resizing")
	flag.Parse()

	// log and sampleLog both satisfy logger.Logger; churn takes the
	// interface rather than a concrete glog.Glog so it can be swapped out
	// in tests without dragging the real glog library along.
	log := &hglog.Glog{InfoLevel: 1}
	sampleLog := &hglog.Glog{InfoLevel: 2}

	tbl := hashtab.New(hashtab.TypeDescriptor[record, string]{
		HashFunction: hashtab.HashString,
		GetKey:       func(r record) string { return r.key },
	})

	for i := uint(0); i < *initialSize; i++ {
		tbl.Add(record{key: fmt.Sprintf("key-%d", i), value: int(i)})
	}
	log.Infof("loaded %d records", tbl.Len())

	coll := hashtab.NewMetricsCollector("hashtabdemo", tbl)
	prometheus.MustRegister(coll)

	http.Handle("/metrics", promhttp.Handler())
	go monitor.NewMonitorServer(*listenAddr).Run()
	log.Infof("serving /debug/vars and /metrics on %s", *listenAddr)

	churn(tbl, *initialSize, *churnInterval, log, sampleLog)
}

// churn repeatedly adds and removes a batch of records so the demo process
// keeps the table resizing and incrementally rehashing, instead of sitting
// idle at a fixed size. stats and samples are logged through the
// logger.Logger interface rather than a concrete logging package, so a
// caller embedding churn in a test can supply a recording stub.
func churn(tbl *hashtab.Table[record, string], baseSize uint, interval time.Duration, log, sampleLog logger.Logger) {
	next := baseSize
	for range time.Tick(interval) {
		batch := 200 + rand.Intn(800)
		for i := uint(0); i < uint(batch); i++ {
			tbl.Add(record{key: fmt.Sprintf("key-%d", next+i), value: int(next + i)})
		}
		next += uint(batch)
		for i := uint(0); i < uint(batch); i++ {
			tbl.Delete(fmt.Sprintf("key-%d", next-uint(batch)+i))
		}
		for _, s := range tbl.GetStats() {
			log.Info(s.String())
		}

		// SampleElements returns []record; logger.Logger.Info wants
		// ...interface{}, so ToAnySlice bridges the two instead of a
		// manual copy loop.
		sample := tbl.SampleElements(3)
		sampleLog.Info(sliceutils.ToAnySlice(sample)...)
	}
}
