// Package timezone keeps the application time zone used for server-managed timestamps.
//
// Usage:
//
//	timezone.Init(cfg.App.Timezone)  // once, at startup
//	now := timezone.Now()            // current time in the app zone
//	s := timezone.Format(t, layout)  // format any time in the app zone
//
// Until Init is called, or when the configured name cannot be loaded, UTC is used.
// Use IANA names such as "UTC", "Europe/Paris" or "Asia/Jakarta".
package timezone
