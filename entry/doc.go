// Package entry implements the entry-point logic for a backend server application that
// sits behind the signing proxy, including opinionated defaults for things like logging
// and request tracing.
//
// Example usage:
//
//	func main() {
//		app := entry.NewApplication("my-backend", slog.LevelInfo)
//		defer app.Stop()
//
//		app.Log().Info("Doing some setup")
//		mw, err := hmac.Middleware(hmac.MiddlewareConfig{Secret: secret})
//		if err != nil {
//			app.Fail("Setup failed", err)
//		}
//
//		h := &somethingThatImplementsHttpHandler{}
//
//		entry.RunServer(app, mw(h), "", 5000)
//	}
package entry
