// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

/*
Package services adapts Vigil's follow-mode components to the suture v4
supervision model.

Each wrapper implements suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Available wrappers:

PipelineService wraps the watch pipeline. A clean stop (context
cancellation, i.e. an interrupt) returns ctx.Err() and the supervisor
shuts down normally. A fatal pipeline error — the follow reader's
retry budget exhausted, a sink write failure — is not restartable,
because the pipeline's reader cannot be reopened mid-run; the wrapper
records the error for the caller and returns it wrapped with
suture.ErrTerminateSupervisorTree so the whole tree stops and the
process can exit with code 2.

HTTPServerService wraps the operational *http.Server, translating its
blocking ListenAndServe into the context-aware Serve pattern with
graceful Shutdown on cancellation.
*/
package services
