// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

/*
Package supervisor provides process supervision for Vigil's follow mode
using suture v4.

Follow mode runs indefinitely, so its long-lived components sit under a
small supervisor tree with failure isolation between the pipeline and
the operational endpoint:

	RootSupervisor ("vigil")
	├── PipelineSupervisor ("pipeline-layer")
	│   └── PipelineService (the watch pipeline)
	└── OpsSupervisor ("ops-layer")
	    └── HTTPServerService (/healthz, /readyz, /metrics)

A crash in the ops HTTP server never interrupts line processing, and a
fatal pipeline error tears the whole tree down (via
suture.ErrTerminateSupervisorTree) so the process can exit with the
right code instead of restarting a reader whose failure budget is spent.

Scan mode never builds a tree; a bounded scan runs the pipeline
directly and exits.

Supervisor events are logged through the sutureslog adapter feeding the
application's zerolog stream (see internal/logging.NewSlogLogger).

Service contract (suture.Service):

	Serve(ctx context.Context) error

Return nil and the service is done and not restarted; return an error
and the supervisor restarts it with exponential backoff; return an
error wrapping suture.ErrTerminateSupervisorTree and the whole tree
stops.
*/
package supervisor
