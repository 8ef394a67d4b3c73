// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

/*
Package services provides suture.Service wrappers for Tastelens components.

# Available Services

HTTPServerService runs the dashboard API. It turns the blocking
ListenAndServe call into a context-aware Serve and drains in-flight
requests on shutdown.

StoreProbeService pings the listings store on a fixed interval and
publishes tastelens_store_up. A failing ping is counted in
tastelens_store_probe_failures_total and logged at most once a minute.

# Return Values

	nil         -> service stopped cleanly, will not restart
	error       -> service crashed, supervisor will restart it
	ctx.Err()   -> shutdown requested

# Usage

	tree.AddStoreService(services.NewStoreProbeService(db, cfg.Store.ProbeInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, 10*time.Second))
*/
package services
