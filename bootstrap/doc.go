// Package bootstrap assembles a dock application: configuration, logging,
// OpenTelemetry, the lifecycle controller and the optional inspector.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg, scene, cat, bootstrap.WithVersion("1.2.0"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.OnReady(func(ctx context.Context) error {
//	    player := di.MustGet[Player](app.Controller)
//	    return player.Spawn(ctx)
//	})
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run initializes the controller, runs hooks, prints the startup summary
// and blocks until SIGINT/SIGTERM. RunTask does the same around a finite
// task, for CLIs and one-shot scene checks.
package bootstrap
