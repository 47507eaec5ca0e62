// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

import (
	"fmt"
	"os"

	"github.com/intuitivelabs/slog"
)

const NAME = "clockdispatch"

var BuildTags []string

// Log is the package-wide log level gate. Tests and embedders can
// lower/raise it with slog.SetLevel(&Log, ...), same as the teacher's
// (commented-out) wtimer_test.go usage.
var Log slog.Log = slog.Log{Level: slog.LWARN}

func DBGon() bool {
	return Log.Level >= slog.LDBG
}

func WARNon() bool {
	return Log.Level >= slog.LWARN
}

func ERRon() bool {
	return Log.Level >= slog.LERR
}

func logf(level slog.LogLevel, tag, f string, a ...interface{}) {
	if Log.Level < level {
		return
	}
	fmt.Fprintf(os.Stderr, NAME+" "+tag+": "+f, a...)
}

func DBG(f string, a ...interface{}) {
	logf(slog.LDBG, "DBG", f, a...)
}

func INFO(f string, a ...interface{}) {
	logf(slog.LINFO, "INFO", f, a...)
}

func WARN(f string, a ...interface{}) {
	logf(slog.LWARN, "WARN", f, a...)
}

func ERR(f string, a ...interface{}) {
	logf(slog.LERR, "ERR", f, a...)
}

// BUG logs an invariant violation that the caller can still recover from
// (the operation becomes a safe no-op or returns an error).
func BUG(f string, a ...interface{}) {
	logf(slog.LERR, "BUG", f, a...)
}

// PANIC logs an invariant violation that leaves the core in a state it
// cannot recover from (e.g. a timer queue corrupted mid-dispatch) and
// crashes the process. A panicking handler is a fatal condition of the
// enclosing kernel -- this core never tries to carry on past one.
func PANIC(f string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, NAME+" PANIC: "+f, a...)
	panic(fmt.Sprintf(NAME+": "+f, a...))
}
