// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package supervisor runs the long-lived parts of the service under a suture v4
supervisor tree.

The tree has three layers so that a failure in one does not take down the
others:

	RootSupervisor ("wayfarer")
	├── DataSupervisor ("data-layer")
	│   └── StorageGCService
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventConsumerService (if events are enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff.
Supervisor events are logged through sutureslog, which takes a *slog.Logger;
main passes logging.NewSlogLogger so those lines land in the zerolog output.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewStorageGCService(store, time.Hour, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
